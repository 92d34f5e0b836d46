// Package analytics contiene los casos de uso read-only del dashboard sobre
// el esquema en estrella ya cargado. El dashboard nunca escribe: consume el
// warehouse terminado y tolera que el ETL lo recargue entre peticiones.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/northwind-dwh/internal/application/dto"
	"github.com/jhoicas/northwind-dwh/internal/domain/repository"
)

// Límites por defecto de los listados del dashboard.
const (
	defaultTopProducts = 10
	defaultTopRows     = 20
	maxListLimit       = 200
)

// DashboardUseCase arma las respuestas del dashboard a partir del
// AnalyticsRepository. No accede a las tablas directamente.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye los KPIs globales del dashboard.
//
// Tres consultas en paralelo:
//  1. GetSalesSummary        → ingresos, pedidos, ticket promedio, impuestos
//  2. GetPurchasesSummary    → costo total de compras
//  3. GetOrderStatusBreakdown → % de pedidos entregados
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type salesResult struct {
		s   *repository.SalesSummaryResult
		err error
	}
	type purchasesResult struct {
		p   *repository.PurchasesSummaryResult
		err error
	}
	type statusResult struct {
		rows []repository.OrderStatusResult
		err  error
	}

	salesCh := make(chan salesResult, 1)
	purchasesCh := make(chan purchasesResult, 1)
	statusCh := make(chan statusResult, 1)

	go func() {
		s, err := uc.analyticsRepo.GetSalesSummary(ctx)
		salesCh <- salesResult{s, err}
	}()
	go func() {
		p, err := uc.analyticsRepo.GetPurchasesSummary(ctx)
		purchasesCh <- purchasesResult{p, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetOrderStatusBreakdown(ctx)
		statusCh <- statusResult{rows, err}
	}()

	sales := <-salesCh
	purchases := <-purchasesCh
	status := <-statusCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de ventas: %w", sales.err)
	}
	if purchases.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de compras: %w", purchases.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard: estados de pedido: %w", status.err)
	}

	return &dto.DashboardSummaryDTO{
		TotalRevenue:   sales.s.TotalRevenue.Round(2),
		TotalOrders:    sales.s.TotalOrders,
		AvgOrderValue:  sales.s.AvgRevenue.Round(2),
		TaxedOrders:    sales.s.TaxedOrders,
		TotalQuantity:  sales.s.TotalQuantity,
		PurchasesCost:  purchases.p.TotalCost.Round(2),
		PurchasesCount: purchases.p.TotalPurchases,
		DeliveredPct:   deliveredPct(status.rows),
		GeneratedAt:    time.Now(),
	}, nil
}

// GetMonthlyRevenue ingresos por mes en orden cronológico.
func (uc *DashboardUseCase) GetMonthlyRevenue(ctx context.Context) ([]dto.MonthlyRevenueDTO, error) {
	rows, err := uc.analyticsRepo.GetMonthlyRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ingresos mensuales: %w", err)
	}
	out := make([]dto.MonthlyRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlyRevenueDTO{
			Year:    r.Year,
			Month:   r.Month,
			Label:   fmt.Sprintf("%04d-%02d", r.Year, r.Month),
			Orders:  r.Orders,
			Revenue: r.Revenue.Round(2),
		})
	}
	return out, nil
}

// GetSalesByCategory ingresos por categoría de producto.
func (uc *DashboardUseCase) GetSalesByCategory(ctx context.Context) ([]dto.CategorySalesDTO, error) {
	rows, err := uc.analyticsRepo.GetSalesByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas por categoría: %w", err)
	}
	out := make([]dto.CategorySalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategorySalesDTO{
			Category: r.Category,
			Quantity: r.Quantity,
			Revenue:  r.Revenue.Round(2),
		})
	}
	return out, nil
}

// GetSalesByCountry ingresos por país del cliente.
func (uc *DashboardUseCase) GetSalesByCountry(ctx context.Context, limit int) ([]dto.CountrySalesDTO, error) {
	rows, err := uc.analyticsRepo.GetSalesByCountry(ctx, clampLimit(limit, defaultTopRows))
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas por país: %w", err)
	}
	out := make([]dto.CountrySalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CountrySalesDTO{
			Country: r.Country,
			Orders:  r.Orders,
			Revenue: r.Revenue.Round(2),
		})
	}
	return out, nil
}

// GetTopProducts ranking de productos por ingreso.
func (uc *DashboardUseCase) GetTopProducts(ctx context.Context, limit int) ([]dto.TopProductDTO, error) {
	rows, err := uc.analyticsRepo.GetTopProducts(ctx, clampLimit(limit, defaultTopProducts))
	if err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", err)
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for i, r := range rows {
		out = append(out, dto.TopProductDTO{
			Rank:         i + 1,
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Category:     r.Category,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue.Round(2),
		})
	}
	return out, nil
}

// GetOrderStatus pedidos por estado con la clasificación entregado/no.
func (uc *DashboardUseCase) GetOrderStatus(ctx context.Context) ([]dto.OrderStatusDTO, error) {
	rows, err := uc.analyticsRepo.GetOrderStatusBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: estados de pedido: %w", err)
	}
	out := make([]dto.OrderStatusDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.OrderStatusDTO{
			Status:    r.Status,
			Delivered: isDeliveredStatus(r.Status),
			Orders:    r.Orders,
			Revenue:   r.Revenue.Round(2),
		})
	}
	return out, nil
}

// GetPurchasesBySupplier compras agrupadas por proveedor.
func (uc *DashboardUseCase) GetPurchasesBySupplier(ctx context.Context, limit int) ([]dto.SupplierPurchasesDTO, error) {
	rows, err := uc.analyticsRepo.GetPurchasesBySupplier(ctx, clampLimit(limit, defaultTopRows))
	if err != nil {
		return nil, fmt.Errorf("dashboard: compras por proveedor: %w", err)
	}
	out := make([]dto.SupplierPurchasesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SupplierPurchasesDTO{
			Supplier:  r.Supplier,
			Country:   r.Country,
			Quantity:  r.Quantity,
			TotalCost: r.TotalCost.Round(2),
		})
	}
	return out, nil
}

// isDeliveredStatus un pedido cuenta como entregado si su estado contiene
// shipped, complete o delivered.
func isDeliveredStatus(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "shipped") ||
		strings.Contains(s, "complete") ||
		strings.Contains(s, "delivered")
}

// deliveredPct porcentaje de pedidos entregados sobre el total, redondeado a 2.
func deliveredPct(rows []repository.OrderStatusResult) decimal.Decimal {
	var total, delivered int64
	for _, r := range rows {
		total += r.Orders
		if isDeliveredStatus(r.Status) {
			delivered += r.Orders
		}
	}
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(delivered * 100).
		Div(decimal.NewFromInt(total)).
		Round(2)
}

// clampLimit aplica default y tope a los límites de listado.
func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
