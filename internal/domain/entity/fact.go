package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesFact una línea de venta (Orders ⋈ Order Details). Las claves foráneas
// referencian a DimCustomer, DimEmployee y DimProduct; la clave primaria la
// asigna la base (BIGSERIAL) al cargar.
type SalesFact struct {
	OrderDate    time.Time
	CustomerKey  int64
	EmployeeKey  int64
	ProductKey   int64
	Quantity     int64
	UnitPrice    decimal.Decimal
	Discount     float64
	TaxRate      float64
	TotalRevenue decimal.Decimal
	FreightCost  decimal.Decimal
	OrderStatus  string
}

// PurchasesFact una línea de orden de compra (Purchase Orders ⋈ Details).
type PurchasesFact struct {
	CreationDate      time.Time
	SupplierKey       int64
	EmployeeKey       int64
	ProductKey        int64
	Quantity          int64
	UnitCost          decimal.Decimal
	TotalPurchaseCost decimal.Decimal
}
