package entity

import "github.com/shopspring/decimal"

// Dimensiones del esquema en estrella. Cada fila se identifica por una clave
// subrogada entera única dentro de su tabla; las filas de la fuente secundaria
// llegan con la clave ya desplazada (ver etl.KeyOffsets) para evitar colisiones.
// Las dimensiones se cargan completas en cada corrida y son de solo lectura
// para el dashboard.

// DimProduct fila de la dimensión de productos.
type DimProduct struct {
	ProductID    int64
	ProductCode  string
	ProductName  string
	Category     string
	StandardCost decimal.Decimal
	ListPrice    decimal.Decimal
	ReorderLevel int64
}

// DimCustomer fila de la dimensión de clientes.
type DimCustomer struct {
	CustomerID    int64
	Company       string
	FirstName     string
	LastName      string
	City          string
	CountryRegion string
}

// DimSupplier fila de la dimensión de proveedores.
type DimSupplier struct {
	SupplierID    int64
	Company       string
	FirstName     string
	LastName      string
	City          string
	CountryRegion string
}

// DimEmployee fila de la dimensión de empleados.
type DimEmployee struct {
	EmployeeID int64
	Company    string
	FirstName  string
	LastName   string
	JobTitle   string
}
