// Package etl contiene la lógica de extracción-transformación-carga del
// data warehouse Northwind. Las transformaciones son funciones puras y
// deterministas: el mismo input produce siempre el mismo StarSchema.
package etl

import "strings"

// Nombres de las fuentes de datos (heterogéneas entre sí).
const (
	SourceNorthwind = "northwind"
	SourceSQLServer = "sqlserver"
)

// Nombres de tablas de origen (un archivo CSV por tabla).
const (
	TableProducts        = "Products"
	TableCategories      = "Categories"
	TableCustomers       = "Customers"
	TableEmployees       = "Employees"
	TableSuppliers       = "Suppliers"
	TableOrders          = "Orders"
	TableOrderDetails    = "Order Details"
	TableOrdersStatus    = "Orders Status"
	TablePurchaseOrders  = "Purchase Orders"
	TablePurchaseDetails = "Purchase Order Details"
)

// Record una fila cruda de una tabla de origen, indexada por nombre de
// columna. Los valores llegan como texto tal cual del CSV; la coerción de
// tipos ocurre en la transformación.
type Record map[string]string

// Get devuelve el primer valor no vacío entre las columnas candidatas.
// Las dos fuentes nombran la misma columna distinto ("ProductID" vs
// "Product ID"), así que casi todos los accesos pasan una lista de alias.
func (r Record) Get(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// Has indica si alguna de las columnas candidatas existe en la fila,
// aunque su valor esté vacío.
func (r Record) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := r[k]; ok {
			return true
		}
	}
	return false
}

// Sources tablas crudas extraídas de ambas fuentes, por nombre de tabla.
// Una tabla ausente (archivo no encontrado) simplemente no aparece en el mapa.
type Sources struct {
	Northwind map[string][]Record
	SQLServer map[string][]Record
}
