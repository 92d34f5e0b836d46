package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/northwind-dwh/internal/domain"
	"github.com/jhoicas/northwind-dwh/internal/domain/entity"
	"github.com/jhoicas/northwind-dwh/internal/domain/repository"
)

var _ repository.WarehouseWriter = (*WarehouseRepo)(nil)

// WarehouseRepo escritura masiva del esquema en estrella. Pasar pool o tx
// (Querier); la corrida del ETL siempre lo usa vía TxRunner para que la carga
// sea todo-o-nada. Los inserts van por COPY, no fila a fila.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de carga. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// truncateOrder hechos primero: las FKs impiden borrar dimensiones referenciadas.
var truncateOrder = []string{
	"fact_sales", "fact_purchases",
	"dim_product", "dim_customer", "dim_employee", "dim_supplier",
}

// TruncateAll vacía las seis tablas respetando el orden de las FKs.
func (r *WarehouseRepo) TruncateAll(ctx context.Context) error {
	for _, table := range truncateOrder {
		if _, err := r.q.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("vaciar %s: %w", table, err)
		}
	}
	return nil
}

// InsertProducts carga dim_product vía COPY.
func (r *WarehouseRepo) InsertProducts(ctx context.Context, rows []entity.DimProduct) (int64, error) {
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"dim_product"},
		[]string{"product_id", "product_code", "product_name", "category", "standard_cost", "list_price", "reorder_level"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			p := rows[i]
			return []any{p.ProductID, p.ProductCode, p.ProductName, p.Category, p.StandardCost, p.ListPrice, p.ReorderLevel}, nil
		}),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("dim_product: %w", domain.ErrDuplicate)
		}
		return 0, fmt.Errorf("copy dim_product: %w", err)
	}
	return n, nil
}

// InsertCustomers carga dim_customer vía COPY.
func (r *WarehouseRepo) InsertCustomers(ctx context.Context, rows []entity.DimCustomer) (int64, error) {
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"dim_customer"},
		[]string{"customer_id", "company", "first_name", "last_name", "city", "country_region"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			c := rows[i]
			return []any{c.CustomerID, c.Company, c.FirstName, c.LastName, c.City, c.CountryRegion}, nil
		}),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("dim_customer: %w", domain.ErrDuplicate)
		}
		return 0, fmt.Errorf("copy dim_customer: %w", err)
	}
	return n, nil
}

// InsertEmployees carga dim_employee vía COPY.
func (r *WarehouseRepo) InsertEmployees(ctx context.Context, rows []entity.DimEmployee) (int64, error) {
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"dim_employee"},
		[]string{"employee_id", "company", "first_name", "last_name", "job_title"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			e := rows[i]
			return []any{e.EmployeeID, e.Company, e.FirstName, e.LastName, e.JobTitle}, nil
		}),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("dim_employee: %w", domain.ErrDuplicate)
		}
		return 0, fmt.Errorf("copy dim_employee: %w", err)
	}
	return n, nil
}

// InsertSuppliers carga dim_supplier vía COPY.
func (r *WarehouseRepo) InsertSuppliers(ctx context.Context, rows []entity.DimSupplier) (int64, error) {
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"dim_supplier"},
		[]string{"supplier_id", "company", "first_name", "last_name", "city", "country_region"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			s := rows[i]
			return []any{s.SupplierID, s.Company, s.FirstName, s.LastName, s.City, s.CountryRegion}, nil
		}),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("dim_supplier: %w", domain.ErrDuplicate)
		}
		return 0, fmt.Errorf("copy dim_supplier: %w", err)
	}
	return n, nil
}

// InsertSales carga fact_sales vía COPY. Las claves foráneas ya vienen
// saneadas; una violación de FK aquí es un bug y revierte la transacción.
func (r *WarehouseRepo) InsertSales(ctx context.Context, rows []entity.SalesFact) (int64, error) {
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"fact_sales"},
		[]string{"order_date", "customer_key", "employee_key", "product_key", "quantity", "unit_price", "discount", "tax_rate", "total_revenue", "freight_cost", "order_status"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			f := rows[i]
			return []any{f.OrderDate, f.CustomerKey, f.EmployeeKey, f.ProductKey, f.Quantity, f.UnitPrice, f.Discount, f.TaxRate, f.TotalRevenue, f.FreightCost, f.OrderStatus}, nil
		}),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("fact_sales: %w", domain.ErrIntegrity)
		}
		return 0, fmt.Errorf("copy fact_sales: %w", err)
	}
	return n, nil
}

// InsertPurchases carga fact_purchases vía COPY.
func (r *WarehouseRepo) InsertPurchases(ctx context.Context, rows []entity.PurchasesFact) (int64, error) {
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"fact_purchases"},
		[]string{"creation_date", "supplier_key", "employee_key", "product_key", "quantity", "unit_cost", "total_purchase_cost"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			f := rows[i]
			return []any{f.CreationDate, f.SupplierKey, f.EmployeeKey, f.ProductKey, f.Quantity, f.UnitCost, f.TotalPurchaseCost}, nil
		}),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("fact_purchases: %w", domain.ErrIntegrity)
		}
		return 0, fmt.Errorf("copy fact_purchases: %w", err)
	}
	return n, nil
}
