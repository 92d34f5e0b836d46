package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/northwind-dwh/internal/domain/entity"
)

func testSchema() *entity.StarSchema {
	date := time.Date(2006, 1, 15, 0, 0, 0, 0, time.UTC)
	return &entity.StarSchema{
		Products:  []entity.DimProduct{{ProductID: 34}},
		Customers: []entity.DimCustomer{{CustomerID: 27}},
		Employees: []entity.DimEmployee{{EmployeeID: 9, FirstName: "Nancy"}},
		Suppliers: []entity.DimSupplier{{SupplierID: 2}},
		Sales: []entity.SalesFact{
			{OrderDate: date, CustomerKey: 27, EmployeeKey: 9, ProductKey: 34},
		},
		Purchases: []entity.PurchasesFact{
			{CreationDate: date, SupplierKey: 2, EmployeeKey: 9, ProductKey: 34},
		},
	}
}

func TestValidateIntegrity_EsquemaLimpioNoCambia(t *testing.T) {
	schema := testSchema()
	report := ValidateIntegrity(schema)

	assert.Zero(t, report.PlaceholderEmployees)
	assert.Zero(t, report.DroppedSales)
	assert.Zero(t, report.DroppedPurchases)
	assert.Len(t, schema.Sales, 1)
	assert.Len(t, schema.Employees, 1)
}

func TestValidateIntegrity_EmpleadoHuerfanoGeneraPlaceholder(t *testing.T) {
	schema := testSchema()
	schema.Sales[0].EmployeeKey = 777

	report := ValidateIntegrity(schema)

	// La venta sobrevive: el dato de venta vale más que el empleado desconocido.
	require.Len(t, schema.Sales, 1)
	assert.Equal(t, int64(1), report.PlaceholderEmployees)

	require.Len(t, schema.Employees, 2)
	ph := schema.Employees[1]
	assert.Equal(t, int64(777), ph.EmployeeID)
	assert.Equal(t, "Unknown", ph.FirstName)
	assert.Equal(t, "ID_777", ph.LastName)
	assert.Equal(t, "Unknown", ph.JobTitle)
	assert.Equal(t, "Unknown", ph.Company)
}

func TestValidateIntegrity_PlaceholdersEnOrdenDeClave(t *testing.T) {
	schema := testSchema()
	date := schema.Sales[0].OrderDate
	schema.Sales = append(schema.Sales,
		entity.SalesFact{OrderDate: date, CustomerKey: 27, EmployeeKey: 900, ProductKey: 34},
		entity.SalesFact{OrderDate: date, CustomerKey: 27, EmployeeKey: 300, ProductKey: 34},
	)

	ValidateIntegrity(schema)

	require.Len(t, schema.Employees, 3)
	assert.Equal(t, int64(300), schema.Employees[1].EmployeeID,
		"los placeholders se agregan en orden ascendente de clave")
	assert.Equal(t, int64(900), schema.Employees[2].EmployeeID)
}

func TestValidateIntegrity_ClienteHuerfanoDescartaVenta(t *testing.T) {
	schema := testSchema()
	schema.Sales[0].CustomerKey = 999

	report := ValidateIntegrity(schema)

	assert.Empty(t, schema.Sales)
	assert.Equal(t, int64(1), report.DroppedSales)
	assert.Zero(t, report.PlaceholderEmployees, "la fila descartada no genera placeholder")
}

func TestValidateIntegrity_ProductoHuerfanoDescartaCompra(t *testing.T) {
	schema := testSchema()
	schema.Purchases[0].ProductKey = 999

	report := ValidateIntegrity(schema)

	assert.Empty(t, schema.Purchases)
	assert.Equal(t, int64(1), report.DroppedPurchases)
	assert.Len(t, schema.Sales, 1, "las ventas no se ven afectadas")
}

// Tras la validación ninguna clave foránea queda sin dimensión.
func TestValidateIntegrity_PostCondicionSinHuerfanos(t *testing.T) {
	schema := testSchema()
	date := schema.Sales[0].OrderDate
	schema.Sales = append(schema.Sales,
		entity.SalesFact{OrderDate: date, CustomerKey: 999, EmployeeKey: 9, ProductKey: 34},
		entity.SalesFact{OrderDate: date, CustomerKey: 27, EmployeeKey: 555, ProductKey: 34},
	)
	schema.Purchases = append(schema.Purchases,
		entity.PurchasesFact{CreationDate: date, SupplierKey: 2, EmployeeKey: 9, ProductKey: 404},
	)

	ValidateIntegrity(schema)

	employees := make(map[int64]bool)
	for _, e := range schema.Employees {
		employees[e.EmployeeID] = true
	}
	customers := map[int64]bool{27: true}
	products := map[int64]bool{34: true}
	suppliers := map[int64]bool{2: true}

	for _, f := range schema.Sales {
		assert.True(t, customers[f.CustomerKey])
		assert.True(t, products[f.ProductKey])
		assert.True(t, employees[f.EmployeeKey])
	}
	for _, f := range schema.Purchases {
		assert.True(t, suppliers[f.SupplierKey])
		assert.True(t, products[f.ProductKey])
		assert.True(t, employees[f.EmployeeKey])
	}
}
