package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/northwind-dwh/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura del dashboard sobre el esquema en
// estrella. Cada consulta va directo al pool, sin caché: si el ETL recargó el
// warehouse fuera de banda, la siguiente petición ya ve el estado nuevo.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesSummary agregados globales de ventas. COALESCE para devolver ceros
// con el warehouse vacío.
func (r *AnalyticsRepo) GetSalesSummary(ctx context.Context) (*repository.SalesSummaryResult, error) {
	const query = `
	SELECT
	    COUNT(*)                                              AS total_orders,
	    COALESCE(SUM(total_revenue), 0)                       AS total_revenue,
	    COALESCE(AVG(total_revenue), 0)                       AS avg_revenue,
	    COALESCE(SUM(CASE WHEN tax_rate > 0 THEN 1 ELSE 0 END), 0) AS taxed_orders,
	    COALESCE(SUM(freight_cost), 0)                        AS total_freight,
	    COALESCE(SUM(quantity), 0)                            AS total_quantity
	FROM fact_sales`

	var s repository.SalesSummaryResult
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalOrders, &s.TotalRevenue, &s.AvgRevenue,
		&s.TaxedOrders, &s.TotalFreight, &s.TotalQuantity,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesSummary: %w", err)
	}
	return &s, nil
}

// GetMonthlyRevenue ingresos por año/mes, orden cronológico.
func (r *AnalyticsRepo) GetMonthlyRevenue(ctx context.Context) ([]repository.MonthlyRevenueResult, error) {
	const query = `
	SELECT
	    EXTRACT(YEAR  FROM order_date)::INT  AS year,
	    EXTRACT(MONTH FROM order_date)::INT  AS month,
	    COUNT(*)                             AS orders,
	    COALESCE(SUM(total_revenue), 0)      AS revenue
	FROM fact_sales
	GROUP BY 1, 2
	ORDER BY 1, 2`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyRevenue: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyRevenueResult
	for rows.Next() {
		var row repository.MonthlyRevenueResult
		if err := rows.Scan(&row.Year, &row.Month, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlyRevenue scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetSalesByCategory ingresos por categoría de producto (LEFT JOIN para no
// perder ventas cuya categoría quedó vacía en la dimensión).
func (r *AnalyticsRepo) GetSalesByCategory(ctx context.Context) ([]repository.CategorySalesResult, error) {
	const query = `
	SELECT
	    COALESCE(NULLIF(dp.category, ''), 'Unknown') AS category,
	    COALESCE(SUM(fs.quantity), 0)                AS quantity,
	    COALESCE(SUM(fs.total_revenue), 0)           AS revenue
	FROM fact_sales fs
	LEFT JOIN dim_product dp ON dp.product_id = fs.product_key
	GROUP BY 1
	ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategorySalesResult
	for rows.Next() {
		var row repository.CategorySalesResult
		if err := rows.Scan(&row.Category, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetSalesByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetSalesByCountry ingresos por país del cliente, top `limit`.
func (r *AnalyticsRepo) GetSalesByCountry(ctx context.Context, limit int) ([]repository.CountrySalesResult, error) {
	const query = `
	SELECT
	    COALESCE(NULLIF(dc.country_region, ''), 'Unknown') AS country,
	    COUNT(*)                                           AS orders,
	    COALESCE(SUM(fs.total_revenue), 0)                 AS revenue
	FROM fact_sales fs
	LEFT JOIN dim_customer dc ON dc.customer_id = fs.customer_key
	GROUP BY 1
	ORDER BY revenue DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesByCountry: %w", err)
	}
	defer rows.Close()

	var results []repository.CountrySalesResult
	for rows.Next() {
		var row repository.CountrySalesResult
		if err := rows.Scan(&row.Country, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetSalesByCountry scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProducts los `limit` productos con mayor ingreso.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    dp.product_id,
	    dp.product_name,
	    COALESCE(NULLIF(dp.category, ''), 'Unknown') AS category,
	    COALESCE(SUM(fs.quantity), 0)                AS quantity_sold,
	    COALESCE(SUM(fs.total_revenue), 0)           AS revenue
	FROM fact_sales fs
	JOIN dim_product dp ON dp.product_id = fs.product_key
	GROUP BY dp.product_id, dp.product_name, dp.category
	ORDER BY revenue DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Category, &row.QuantitySold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetOrderStatusBreakdown ventas agrupadas por estado del pedido.
func (r *AnalyticsRepo) GetOrderStatusBreakdown(ctx context.Context) ([]repository.OrderStatusResult, error) {
	const query = `
	SELECT
	    COALESCE(NULLIF(order_status, ''), 'Unknown') AS status,
	    COUNT(*)                                      AS orders,
	    COALESCE(SUM(total_revenue), 0)               AS revenue
	FROM fact_sales
	GROUP BY 1
	ORDER BY orders DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetOrderStatusBreakdown: %w", err)
	}
	defer rows.Close()

	var results []repository.OrderStatusResult
	for rows.Next() {
		var row repository.OrderStatusResult
		if err := rows.Scan(&row.Status, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetOrderStatusBreakdown scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetPurchasesBySupplier compras agrupadas por proveedor, top `limit` por costo.
func (r *AnalyticsRepo) GetPurchasesBySupplier(ctx context.Context, limit int) ([]repository.SupplierPurchasesResult, error) {
	const query = `
	SELECT
	    COALESCE(NULLIF(ds.company, ''), 'Unknown')        AS supplier,
	    COALESCE(NULLIF(ds.country_region, ''), 'Unknown') AS country,
	    COALESCE(SUM(fp.quantity), 0)                      AS quantity,
	    COALESCE(SUM(fp.total_purchase_cost), 0)           AS total_cost
	FROM fact_purchases fp
	LEFT JOIN dim_supplier ds ON ds.supplier_id = fp.supplier_key
	GROUP BY 1, 2
	ORDER BY total_cost DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetPurchasesBySupplier: %w", err)
	}
	defer rows.Close()

	var results []repository.SupplierPurchasesResult
	for rows.Next() {
		var row repository.SupplierPurchasesResult
		if err := rows.Scan(&row.Supplier, &row.Country, &row.Quantity, &row.TotalCost); err != nil {
			return nil, fmt.Errorf("analytics.GetPurchasesBySupplier scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetPurchasesSummary agregados globales de fact_purchases.
func (r *AnalyticsRepo) GetPurchasesSummary(ctx context.Context) (*repository.PurchasesSummaryResult, error) {
	const query = `
	SELECT
	    COUNT(*)                                  AS total_purchases,
	    COALESCE(SUM(quantity), 0)                AS total_quantity,
	    COALESCE(SUM(total_purchase_cost), 0)     AS total_cost
	FROM fact_purchases`

	var s repository.PurchasesSummaryResult
	err := r.pool.QueryRow(ctx, query).Scan(&s.TotalPurchases, &s.TotalQuantity, &s.TotalCost)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetPurchasesSummary: %w", err)
	}
	return &s, nil
}
