package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fusión dual-source de dimensiones: los IDs de la fuente SQL Server se
// desplazan por max(ID northwind) + 1000 para convivir sin colisiones.
// ──────────────────────────────────────────────────────────────────────────────

func TestMergeOffset(t *testing.T) {
	assert.Equal(t, int64(0), mergeOffset(90, 5, 0), "sin filas SQL no hay riesgo de colisión")
	assert.Equal(t, int64(0), mergeOffset(0, 0, 5), "sin filas Northwind tampoco")
	assert.Equal(t, int64(1090), mergeOffset(90, 5, 3))
}

func TestTransformProducts_FusionaAmbasFuentes(t *testing.T) {
	src := &Sources{
		Northwind: map[string][]Record{
			TableProducts: {
				{"ID": "1", "Product Name": "Chai NW", "Category": "Beverages", "List Price": "18.00"},
				{"ID": "90", "Product Name": "Último NW", "Category": "Condiments"},
			},
		},
		SQLServer: map[string][]Record{
			TableProducts: {
				{"ProductID": "1", "ProductName": "Chai SQL", "CategoryID": "8", "UnitPrice": "19.00"},
			},
			TableCategories: {
				{"CategoryID": "8", "CategoryName": "Seafood"},
			},
		},
	}

	rejects := make(Rejects)
	products, offset := transformProducts(src, rejects)

	require.Len(t, products, 3)
	assert.Equal(t, int64(1090), offset, "offset = max ID northwind (90) + 1000")

	// El producto SQL conserva su identidad bajo la clave desplazada.
	assert.Equal(t, int64(1091), products[2].ProductID)
	assert.Equal(t, "Chai SQL", products[2].ProductName)
	assert.Equal(t, "Seafood", products[2].Category, "la categoría se resuelve vía la tabla Categories")
	assert.Equal(t, int64(0), rejects.Total())
}

func TestTransformProducts_CategoriaDesconocida(t *testing.T) {
	src := &Sources{
		Northwind: map[string][]Record{},
		SQLServer: map[string][]Record{
			TableProducts: {
				{"ProductID": "3", "ProductName": "Sin categoría", "CategoryID": "99"},
			},
		},
	}
	products, _ := transformProducts(src, make(Rejects))
	require.Len(t, products, 1)
	assert.Equal(t, "Unknown", products[0].Category)
}

func TestTransformProducts_DescartaIDInvalido(t *testing.T) {
	src := &Sources{
		Northwind: map[string][]Record{
			TableProducts: {
				{"ID": "no-numérico", "Product Name": "Roto"},
				{"ID": "2", "Product Name": "Bueno"},
			},
		},
		SQLServer: map[string][]Record{},
	}
	rejects := make(Rejects)
	products, _ := transformProducts(src, rejects)

	require.Len(t, products, 1)
	assert.Equal(t, "Bueno", products[0].ProductName)
	assert.Equal(t, int64(1), rejects["dim_product"])
}

func TestTransformCustomers_SeparaContactName(t *testing.T) {
	src := &Sources{
		Northwind: map[string][]Record{
			TableCustomers: {
				{"ID": "5", "Company": "Compañía E", "First Name": "Laura", "Last Name": "Giussani", "Country/Region": "Argentina"},
			},
		},
		SQLServer: map[string][]Record{
			TableCustomers: {
				{"CustomerID": "2", "CompanyName": "Ana Trujillo Emparedados", "ContactName": "Ana Trujillo", "Country": "Mexico"},
			},
		},
	}
	customers, offset := transformCustomers(src, make(Rejects))

	require.Len(t, customers, 2)
	assert.Equal(t, int64(1005), offset)

	sql := customers[1]
	assert.Equal(t, int64(1007), sql.CustomerID)
	assert.Equal(t, "Ana", sql.FirstName)
	assert.Equal(t, "Trujillo", sql.LastName)
	assert.Equal(t, "Mexico", sql.CountryRegion)
}

func TestTransformEmployees_CompanyPorDefecto(t *testing.T) {
	src := &Sources{
		Northwind: map[string][]Record{},
		SQLServer: map[string][]Record{
			TableEmployees: {
				{"EmployeeID": "1", "FirstName": "Nancy", "LastName": "Davolio", "Title": "Sales Representative"},
			},
		},
	}
	employees, offset := transformEmployees(src, make(Rejects))

	require.Len(t, employees, 1)
	assert.Equal(t, int64(0), offset, "una sola fuente no desplaza claves")
	assert.Equal(t, "Northwind Traders", employees[0].Company)
	assert.Equal(t, "Sales Representative", employees[0].JobTitle)
}

func TestTransform_DuplicadosPrimeraAparicionGana(t *testing.T) {
	src := &Sources{
		Northwind: map[string][]Record{
			TableSuppliers: {
				{"ID": "4", "Company": "Proveedor D"},
				{"ID": "4", "Company": "Proveedor D bis"},
			},
		},
		SQLServer: map[string][]Record{},
	}
	rejects := make(Rejects)
	suppliers, _ := transformSuppliers(src, rejects)

	require.Len(t, suppliers, 1)
	assert.Equal(t, "Proveedor D", suppliers[0].Company)
	assert.Equal(t, int64(1), rejects["dim_supplier_dup"])
}

// TestTransform_Determinista mismo input, mismo StarSchema, dos corridas.
func TestTransform_Determinista(t *testing.T) {
	src := &Sources{
		Northwind: map[string][]Record{
			TableProducts:  {{"ID": "1", "Product Name": "Chai"}},
			TableCustomers: {{"ID": "1", "Company": "Compañía A"}},
			TableEmployees: {{"ID": "1", "First Name": "Nancy"}},
			TableSuppliers: {{"ID": "1", "Company": "Proveedor A"}},
			TableOrders: {
				{"Order ID": "30", "Order Date": "2006-01-15", "Customer ID": "1", "Employee ID": "1", "Shipping Fee": "200.00"},
			},
			TableOrderDetails: {
				{"Order ID": "30", "Product ID": "1", "Quantity": "10", "Unit Price": "18.00", "Discount": "0"},
			},
		},
		SQLServer: map[string][]Record{
			TableProducts: {{"ProductID": "1", "ProductName": "Chai SQL"}},
		},
	}

	a := Transform(src)
	b := Transform(src)

	assert.Equal(t, a.Offsets, b.Offsets)
	assert.Equal(t, a.Rejects, b.Rejects)
	assert.Equal(t, a.Schema, b.Schema, "la transformación debe ser determinista")
}
