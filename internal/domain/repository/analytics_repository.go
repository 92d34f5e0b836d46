package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// Resultados de las consultas read-only sobre el esquema en estrella.

// SalesSummaryResult agregados globales de fact_sales.
type SalesSummaryResult struct {
	TotalOrders   int64
	TotalRevenue  decimal.Decimal
	AvgRevenue    decimal.Decimal
	TaxedOrders   int64
	TotalFreight  decimal.Decimal
	TotalQuantity int64
}

// MonthlyRevenueResult ingresos agrupados por año/mes.
type MonthlyRevenueResult struct {
	Year    int
	Month   int
	Orders  int64
	Revenue decimal.Decimal
}

// CategorySalesResult ingresos por categoría de producto.
type CategorySalesResult struct {
	Category string
	Quantity int64
	Revenue  decimal.Decimal
}

// CountrySalesResult ingresos por país del cliente.
type CountrySalesResult struct {
	Country string
	Orders  int64
	Revenue decimal.Decimal
}

// TopProductResult producto rankeado por ingreso.
type TopProductResult struct {
	ProductID    int64
	ProductName  string
	Category     string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// OrderStatusResult ventas agrupadas por estado del pedido.
type OrderStatusResult struct {
	Status  string
	Orders  int64
	Revenue decimal.Decimal
}

// SupplierPurchasesResult compras agrupadas por proveedor.
type SupplierPurchasesResult struct {
	Supplier  string
	Country   string
	Quantity  int64
	TotalCost decimal.Decimal
}

// PurchasesSummaryResult agregados globales de fact_purchases.
type PurchasesSummaryResult struct {
	TotalPurchases int64
	TotalQuantity  int64
	TotalCost      decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard. El
// dashboard es un consumidor pasivo del esquema terminado: ninguna de estas
// operaciones muta estado y cada llamada va directo a la base (sin caché),
// de modo que toleran una recarga del warehouse fuera de banda.
type AnalyticsRepository interface {
	GetSalesSummary(ctx context.Context) (*SalesSummaryResult, error)
	GetMonthlyRevenue(ctx context.Context) ([]MonthlyRevenueResult, error)
	GetSalesByCategory(ctx context.Context) ([]CategorySalesResult, error)
	GetSalesByCountry(ctx context.Context, limit int) ([]CountrySalesResult, error)
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)
	GetOrderStatusBreakdown(ctx context.Context) ([]OrderStatusResult, error)
	GetPurchasesBySupplier(ctx context.Context, limit int) ([]SupplierPurchasesResult, error)
	GetPurchasesSummary(ctx context.Context) (*PurchasesSummaryResult, error)
}
