package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO KPIs globales del dashboard.
type DashboardSummaryDTO struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalOrders    int64           `json:"total_orders"`
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"`
	TaxedOrders    int64           `json:"taxed_orders"`
	TotalQuantity  int64           `json:"total_quantity"`
	PurchasesCost  decimal.Decimal `json:"purchases_cost"`
	PurchasesCount int64           `json:"purchases_count"`
	DeliveredPct   decimal.Decimal `json:"delivered_pct"` // % de pedidos entregados
	GeneratedAt    time.Time       `json:"generated_at"`
}

// MonthlyRevenueDTO ingresos de un mes.
type MonthlyRevenueDTO struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Label   string          `json:"label"` // "2018-03"
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// CategorySalesDTO ingresos por categoría de producto.
type CategorySalesDTO struct {
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// CountrySalesDTO ingresos por país del cliente.
type CountrySalesDTO struct {
	Country string          `json:"country"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductDTO producto rankeado por ingreso.
type TopProductDTO struct {
	Rank         int             `json:"rank"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Category     string          `json:"category"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// OrderStatusDTO pedidos agrupados por estado, con la clasificación de
// entrega derivada del nombre del estado.
type OrderStatusDTO struct {
	Status    string          `json:"status"`
	Delivered bool            `json:"delivered"`
	Orders    int64           `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// SupplierPurchasesDTO compras agrupadas por proveedor.
type SupplierPurchasesDTO struct {
	Supplier  string          `json:"supplier"`
	Country   string          `json:"country"`
	Quantity  int64           `json:"quantity"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// SalesReportDataDTO datos ya agregados para el reporte PDF de ventas.
type SalesReportDataDTO struct {
	GeneratedAt time.Time
	Summary     DashboardSummaryDTO
	TopProducts []TopProductDTO
	Monthly     []MonthlyRevenueDTO
}
