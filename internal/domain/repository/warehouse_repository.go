package repository

import (
	"context"

	"github.com/jhoicas/northwind-dwh/internal/domain/entity"
)

// LoadCounts filas insertadas por tabla en una carga.
type LoadCounts struct {
	Products  int64
	Customers int64
	Employees int64
	Suppliers int64
	Sales     int64
	Purchases int64
}

// Total suma de filas cargadas en todas las tablas.
func (c LoadCounts) Total() int64 {
	return c.Products + c.Customers + c.Employees + c.Suppliers + c.Sales + c.Purchases
}

// SchemaManager garantiza que el esquema en estrella exista en el destino.
type SchemaManager interface {
	EnsureSchema(ctx context.Context) error
}

// WarehouseWriter puerto de escritura del data warehouse. Las operaciones se
// ejecutan dentro de la transacción que abre el TxRunner: TruncateAll borra
// hechos y luego dimensiones (orden impuesto por las FKs) y los Insert*
// cargan dimensiones antes que hechos.
type WarehouseWriter interface {
	TruncateAll(ctx context.Context) error
	InsertProducts(ctx context.Context, rows []entity.DimProduct) (int64, error)
	InsertCustomers(ctx context.Context, rows []entity.DimCustomer) (int64, error)
	InsertEmployees(ctx context.Context, rows []entity.DimEmployee) (int64, error)
	InsertSuppliers(ctx context.Context, rows []entity.DimSupplier) (int64, error)
	InsertSales(ctx context.Context, rows []entity.SalesFact) (int64, error)
	InsertPurchases(ctx context.Context, rows []entity.PurchasesFact) (int64, error)
}
