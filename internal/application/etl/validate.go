package etl

import (
	"fmt"
	"sort"

	"github.com/jhoicas/northwind-dwh/internal/domain/entity"
)

// Validación de integridad referencial previa a la carga: toda clave foránea
// de los hechos debe resolver a una fila de dimensión. Se sanea en memoria,
// sobre el StarSchema ya transformado (no contra la base viva), así la carga
// entra completa o no entra.
//
//   - Empleados huérfanos  → se agrega una fila placeholder a dim_employee
//     (el dato de venta vale más que el empleado desconocido).
//   - Clientes, productos o proveedores huérfanos → la fila de hecho se
//     descarta.

// IntegrityReport resultado del saneo de claves foráneas.
type IntegrityReport struct {
	PlaceholderEmployees int64
	DroppedSales         int64
	DroppedPurchases     int64
}

// ValidateIntegrity ajusta el esquema en el lugar y reporta lo hecho.
// Determinista: los placeholders se agregan en orden ascendente de clave.
func ValidateIntegrity(schema *entity.StarSchema) IntegrityReport {
	var report IntegrityReport

	products := make(map[int64]bool, len(schema.Products))
	for _, p := range schema.Products {
		products[p.ProductID] = true
	}
	customers := make(map[int64]bool, len(schema.Customers))
	for _, c := range schema.Customers {
		customers[c.CustomerID] = true
	}
	suppliers := make(map[int64]bool, len(schema.Suppliers))
	for _, s := range schema.Suppliers {
		suppliers[s.SupplierID] = true
	}
	employees := make(map[int64]bool, len(schema.Employees))
	for _, e := range schema.Employees {
		employees[e.EmployeeID] = true
	}

	orphanEmployees := make(map[int64]bool)

	sales := schema.Sales[:0]
	for _, f := range schema.Sales {
		if !customers[f.CustomerKey] || !products[f.ProductKey] {
			report.DroppedSales++
			continue
		}
		if !employees[f.EmployeeKey] {
			orphanEmployees[f.EmployeeKey] = true
		}
		sales = append(sales, f)
	}
	schema.Sales = sales

	purchases := schema.Purchases[:0]
	for _, f := range schema.Purchases {
		if !suppliers[f.SupplierKey] || !products[f.ProductKey] {
			report.DroppedPurchases++
			continue
		}
		if !employees[f.EmployeeKey] {
			orphanEmployees[f.EmployeeKey] = true
		}
		purchases = append(purchases, f)
	}
	schema.Purchases = purchases

	keys := make([]int64, 0, len(orphanEmployees))
	for k := range orphanEmployees {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		schema.Employees = append(schema.Employees, entity.DimEmployee{
			EmployeeID: k,
			Company:    "Unknown",
			FirstName:  "Unknown",
			LastName:   fmt.Sprintf("ID_%d", k),
			JobTitle:   "Unknown",
		})
		report.PlaceholderEmployees++
	}

	return report
}
