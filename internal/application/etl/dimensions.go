package etl

import (
	"github.com/jhoicas/northwind-dwh/internal/domain/entity"
)

// Fusión dual-source de dimensiones: la fuente Northwind manda; los IDs de la
// fuente SQL Server se desplazan por max(ID northwind) + keyOffsetGap para que
// ambas convivan en la misma tabla sin colisiones de clave subrogada. El mismo
// desplazamiento se aplica después a las claves foráneas de los hechos de esa
// fuente, de modo que sigan resolviendo a su dimensión.
const keyOffsetGap = 1000

// KeyOffsets desplazamiento por dimensión aplicado a los IDs de la fuente
// SQL Server. Cero cuando esa dimensión no fusiona ambas fuentes.
type KeyOffsets struct {
	Product  int64
	Customer int64
	Employee int64
	Supplier int64
}

// Rejects filas descartadas por etapa de transformación.
type Rejects map[string]int64

func (r Rejects) add(stage string, n int64) {
	if n > 0 {
		r[stage] += n
	}
}

// Total filas descartadas en todas las etapas.
func (r Rejects) Total() int64 {
	var t int64
	for _, n := range r {
		t += n
	}
	return t
}

// mergeOffset calcula el desplazamiento para la segunda fuente: 0 si alguna
// de las dos está vacía (no hay riesgo de colisión).
func mergeOffset(maxNW int64, nwCount, sqlCount int) int64 {
	if nwCount == 0 || sqlCount == 0 {
		return 0
	}
	return maxNW + keyOffsetGap
}

// dedupeInt64 devuelve true la primera vez que ve una clave (la primera
// aparición gana, el resto se descarta como duplicado).
func firstSeen(seen map[int64]bool, key int64) bool {
	if seen[key] {
		return false
	}
	seen[key] = true
	return true
}

// transformProducts fusiona Products de ambas fuentes en DimProduct.
func transformProducts(src *Sources, rejects Rejects) ([]entity.DimProduct, int64) {
	var nw []entity.DimProduct
	var maxID int64
	for _, r := range src.Northwind[TableProducts] {
		id, ok := toInt64(r.Get("ID", "Product ID"))
		if !ok {
			rejects.add("dim_product", 1)
			continue
		}
		stdCost, _ := toDecimal(r.Get("Standard Cost"))
		listPrice, _ := toDecimal(r.Get("List Price"))
		reorder, _ := toInt64(r.Get("Reorder Level"))
		nw = append(nw, entity.DimProduct{
			ProductID:    id,
			ProductCode:  r.Get("Product Code"),
			ProductName:  r.Get("Product Name"),
			Category:     r.Get("Category"),
			StandardCost: stdCost,
			ListPrice:    listPrice,
			ReorderLevel: reorder,
		})
		if id > maxID {
			maxID = id
		}
	}

	// Categorías de la fuente SQL Server: CategoryID -> CategoryName.
	categories := make(map[string]string)
	for _, c := range src.SQLServer[TableCategories] {
		categories[c.Get("CategoryID", "Category ID")] = c.Get("CategoryName", "Category Name")
	}

	var sql []entity.DimProduct
	for _, r := range src.SQLServer[TableProducts] {
		id, ok := toInt64(r.Get("ProductID", "Product ID"))
		if !ok {
			rejects.add("dim_product", 1)
			continue
		}
		category := categories[r.Get("CategoryID", "Category ID")]
		if category == "" {
			category = "Unknown"
		}
		stdCost, _ := toDecimal(r.Get("StandardCost", "Standard Cost"))
		listPrice, _ := toDecimal(r.Get("UnitPrice", "List Price"))
		reorder, _ := toInt64(r.Get("ReorderLevel", "Reorder Level"))
		sql = append(sql, entity.DimProduct{
			ProductID:    id,
			ProductCode:  r.Get("ProductCode", "Product Code"),
			ProductName:  r.Get("ProductName", "Product Name"),
			Category:     category,
			StandardCost: stdCost,
			ListPrice:    listPrice,
			ReorderLevel: reorder,
		})
	}

	offset := mergeOffset(maxID, len(nw), len(sql))
	seen := make(map[int64]bool, len(nw)+len(sql))
	out := make([]entity.DimProduct, 0, len(nw)+len(sql))
	for _, p := range nw {
		if firstSeen(seen, p.ProductID) {
			out = append(out, p)
		} else {
			rejects.add("dim_product_dup", 1)
		}
	}
	for _, p := range sql {
		p.ProductID += offset
		if firstSeen(seen, p.ProductID) {
			out = append(out, p)
		} else {
			rejects.add("dim_product_dup", 1)
		}
	}
	return out, offset
}

// transformCustomers fusiona Customers de ambas fuentes en DimCustomer.
func transformCustomers(src *Sources, rejects Rejects) ([]entity.DimCustomer, int64) {
	var nw []entity.DimCustomer
	var maxID int64
	for _, r := range src.Northwind[TableCustomers] {
		id, ok := toInt64(r.Get("ID", "Customer ID"))
		if !ok {
			rejects.add("dim_customer", 1)
			continue
		}
		nw = append(nw, entity.DimCustomer{
			CustomerID:    id,
			Company:       r.Get("Company"),
			FirstName:     r.Get("First Name"),
			LastName:      r.Get("Last Name"),
			City:          r.Get("City"),
			CountryRegion: r.Get("Country/Region"),
		})
		if id > maxID {
			maxID = id
		}
	}

	var sql []entity.DimCustomer
	for _, r := range src.SQLServer[TableCustomers] {
		id, ok := toInt64(r.Get("CustomerID", "Customer ID"))
		if !ok {
			rejects.add("dim_customer", 1)
			continue
		}
		first, last := splitContactName(r.Get("ContactName", "Contact Name"))
		sql = append(sql, entity.DimCustomer{
			CustomerID:    id,
			Company:       r.Get("CompanyName", "Company"),
			FirstName:     first,
			LastName:      last,
			City:          r.Get("City"),
			CountryRegion: r.Get("Country", "CountryRegion"),
		})
	}

	offset := mergeOffset(maxID, len(nw), len(sql))
	seen := make(map[int64]bool, len(nw)+len(sql))
	out := make([]entity.DimCustomer, 0, len(nw)+len(sql))
	for _, c := range nw {
		if firstSeen(seen, c.CustomerID) {
			out = append(out, c)
		} else {
			rejects.add("dim_customer_dup", 1)
		}
	}
	for _, c := range sql {
		c.CustomerID += offset
		if firstSeen(seen, c.CustomerID) {
			out = append(out, c)
		} else {
			rejects.add("dim_customer_dup", 1)
		}
	}
	return out, offset
}

// transformEmployees fusiona Employees de ambas fuentes en DimEmployee.
func transformEmployees(src *Sources, rejects Rejects) ([]entity.DimEmployee, int64) {
	var nw []entity.DimEmployee
	var maxID int64
	for _, r := range src.Northwind[TableEmployees] {
		id, ok := toInt64(r.Get("ID", "Employee ID"))
		if !ok {
			rejects.add("dim_employee", 1)
			continue
		}
		nw = append(nw, entity.DimEmployee{
			EmployeeID: id,
			Company:    r.Get("Company"),
			FirstName:  r.Get("First Name"),
			LastName:   r.Get("Last Name"),
			JobTitle:   r.Get("Job Title"),
		})
		if id > maxID {
			maxID = id
		}
	}

	var sql []entity.DimEmployee
	for _, r := range src.SQLServer[TableEmployees] {
		id, ok := toInt64(r.Get("EmployeeID", "Employee ID"))
		if !ok {
			rejects.add("dim_employee", 1)
			continue
		}
		company := r.Get("Company")
		if company == "" {
			company = "Northwind Traders"
		}
		sql = append(sql, entity.DimEmployee{
			EmployeeID: id,
			Company:    company,
			FirstName:  r.Get("FirstName", "First Name"),
			LastName:   r.Get("LastName", "Last Name"),
			JobTitle:   r.Get("Title", "Job Title"),
		})
	}

	offset := mergeOffset(maxID, len(nw), len(sql))
	seen := make(map[int64]bool, len(nw)+len(sql))
	out := make([]entity.DimEmployee, 0, len(nw)+len(sql))
	for _, e := range nw {
		if firstSeen(seen, e.EmployeeID) {
			out = append(out, e)
		} else {
			rejects.add("dim_employee_dup", 1)
		}
	}
	for _, e := range sql {
		e.EmployeeID += offset
		if firstSeen(seen, e.EmployeeID) {
			out = append(out, e)
		} else {
			rejects.add("dim_employee_dup", 1)
		}
	}
	return out, offset
}

// transformSuppliers fusiona Suppliers de ambas fuentes en DimSupplier.
func transformSuppliers(src *Sources, rejects Rejects) ([]entity.DimSupplier, int64) {
	var nw []entity.DimSupplier
	var maxID int64
	for _, r := range src.Northwind[TableSuppliers] {
		id, ok := toInt64(r.Get("ID", "Supplier ID"))
		if !ok {
			rejects.add("dim_supplier", 1)
			continue
		}
		nw = append(nw, entity.DimSupplier{
			SupplierID:    id,
			Company:       r.Get("Company"),
			FirstName:     r.Get("First Name"),
			LastName:      r.Get("Last Name"),
			City:          r.Get("City"),
			CountryRegion: r.Get("Country/Region"),
		})
		if id > maxID {
			maxID = id
		}
	}

	var sql []entity.DimSupplier
	for _, r := range src.SQLServer[TableSuppliers] {
		id, ok := toInt64(r.Get("SupplierID", "Supplier ID"))
		if !ok {
			rejects.add("dim_supplier", 1)
			continue
		}
		first, last := splitContactName(r.Get("ContactName", "Contact Name"))
		sql = append(sql, entity.DimSupplier{
			SupplierID:    id,
			Company:       r.Get("CompanyName", "Company"),
			FirstName:     first,
			LastName:      last,
			City:          r.Get("City"),
			CountryRegion: r.Get("Country", "CountryRegion"),
		})
	}

	offset := mergeOffset(maxID, len(nw), len(sql))
	seen := make(map[int64]bool, len(nw)+len(sql))
	out := make([]entity.DimSupplier, 0, len(nw)+len(sql))
	for _, s := range nw {
		if firstSeen(seen, s.SupplierID) {
			out = append(out, s)
		} else {
			rejects.add("dim_supplier_dup", 1)
		}
	}
	for _, s := range sql {
		s.SupplierID += offset
		if firstSeen(seen, s.SupplierID) {
			out = append(out, s)
		} else {
			rejects.add("dim_supplier_dup", 1)
		}
	}
	return out, offset
}
