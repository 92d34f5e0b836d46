package etl

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/northwind-dwh/internal/domain/entity"
)

// Reglas de negocio de los hechos:
//   - TotalRevenue  = UnitPrice × Quantity × (1 − Discount)
//   - TaxRate       = 10% cuando el flete del pedido llega a taxFreightFloor
//   - TotalPurchaseCost = UnitCost × Quantity
var taxFreightFloor = decimal.NewFromInt(500)

const taxRateHighFreight = 0.10

// salesRevenue aplica la fórmula de ingreso de una línea de venta.
func salesRevenue(unitPrice decimal.Decimal, quantity int64, discount float64) decimal.Decimal {
	return unitPrice.
		Mul(decimal.NewFromInt(quantity)).
		Mul(decimal.NewFromFloat(1 - discount))
}

// freightTaxRate determina la tasa de impuesto según el flete del pedido.
func freightTaxRate(freight decimal.Decimal) float64 {
	if freight.GreaterThanOrEqual(taxFreightFloor) {
		return taxRateHighFreight
	}
	return 0
}

// indexByKey agrupa filas de una tabla por el valor entero de su clave.
func indexByKey(rows []Record, keys ...string) map[int64]Record {
	idx := make(map[int64]Record, len(rows))
	for _, r := range rows {
		if id, ok := toInt64(r.Get(keys...)); ok {
			if _, dup := idx[id]; !dup {
				idx[id] = r
			}
		}
	}
	return idx
}

// transformSales construye fact_sales fusionando ambas fuentes.
// Una fila sin fecha de pedido, cliente o producto válidos es crítica y se
// descarta (nunca se carga corrupta); un empleado ausente se normaliza a 0 y
// lo resuelve la validación de integridad con una fila placeholder.
func transformSales(src *Sources, off KeyOffsets, rejects Rejects) []entity.SalesFact {
	var out []entity.SalesFact

	// ── Fuente Northwind: Order Details ⋈ Orders ⋈ Orders Status ────────────
	orders := indexByKey(src.Northwind[TableOrders], "Order ID", "ID")
	statusNames := make(map[int64]string)
	for _, s := range src.Northwind[TableOrdersStatus] {
		if id, ok := toInt64(s.Get("ID", "Status ID")); ok {
			statusNames[id] = s.Get("Status Name")
		}
	}
	for _, d := range src.Northwind[TableOrderDetails] {
		orderID, ok := toInt64(d.Get("Order ID"))
		if !ok {
			rejects.add("fact_sales", 1)
			continue
		}
		order, ok := orders[orderID]
		if !ok {
			// inner join: detalle sin pedido no produce fila
			rejects.add("fact_sales", 1)
			continue
		}
		orderDate, dateOK := toDate(order.Get("Order Date"))
		customerKey, custOK := toInt64(order.Get("Customer ID"))
		productKey, prodOK := toInt64(d.Get("Product ID"))
		if !dateOK || !custOK || !prodOK {
			rejects.add("fact_sales", 1)
			continue
		}
		employeeKey, _ := toInt64(order.Get("Employee ID"))
		quantity, _ := toInt64(d.Get("Quantity"))
		unitPrice, _ := toDecimal(d.Get("Unit Price"))
		discount, _ := toFloat(d.Get("Discount"))
		freight, _ := toDecimal(order.Get("Shipping Fee"))

		status := "Unknown"
		if statusID, ok := toInt64(order.Get("Status ID")); ok {
			if name := statusNames[statusID]; name != "" {
				status = name
			}
		}

		out = append(out, entity.SalesFact{
			OrderDate:    orderDate,
			CustomerKey:  customerKey,
			EmployeeKey:  employeeKey,
			ProductKey:   productKey,
			Quantity:     quantity,
			UnitPrice:    unitPrice,
			Discount:     discount,
			TaxRate:      freightTaxRate(freight),
			TotalRevenue: salesRevenue(unitPrice, quantity, discount),
			FreightCost:  freight,
			OrderStatus:  status,
		})
	}

	// ── Fuente SQL Server: Order Details ⋈ Orders ───────────────────────────
	// Las claves foráneas se desplazan con el mismo offset que recibió cada
	// dimensión al fusionarse, para que sigan resolviendo.
	sqlOrders := indexByKey(src.SQLServer[TableOrders], "OrderID", "Order ID")
	for _, d := range src.SQLServer[TableOrderDetails] {
		orderID, ok := toInt64(d.Get("OrderID", "Order ID"))
		if !ok {
			rejects.add("fact_sales", 1)
			continue
		}
		order, ok := sqlOrders[orderID]
		if !ok {
			rejects.add("fact_sales", 1)
			continue
		}
		orderDate, dateOK := toDate(order.Get("OrderDate", "Order Date"))
		customerKey, custOK := toInt64(order.Get("CustomerID", "Customer ID"))
		productKey, prodOK := toInt64(d.Get("ProductID", "Product ID"))
		if !dateOK || !custOK || !prodOK {
			rejects.add("fact_sales", 1)
			continue
		}
		employeeKey, empOK := toInt64(order.Get("EmployeeID", "Employee ID"))
		quantity, _ := toInt64(d.Get("Quantity"))
		unitPrice, _ := toDecimal(d.Get("UnitPrice", "Unit Price"))
		discount, _ := toFloat(d.Get("Discount"))
		freight, _ := toDecimal(order.Get("Freight", "Shipping Fee"))

		status := order.Get("Status", "OrderStatus", "Status Name")
		if status == "" {
			status = "Unknown"
		}

		if empOK {
			employeeKey += off.Employee
		} else {
			employeeKey = 0
		}
		out = append(out, entity.SalesFact{
			OrderDate:    orderDate,
			CustomerKey:  customerKey + off.Customer,
			EmployeeKey:  employeeKey,
			ProductKey:   productKey + off.Product,
			Quantity:     quantity,
			UnitPrice:    unitPrice,
			Discount:     discount,
			TaxRate:      freightTaxRate(freight),
			TotalRevenue: salesRevenue(unitPrice, quantity, discount),
			FreightCost:  freight,
			OrderStatus:  status,
		})
	}

	return out
}

// transformPurchases construye fact_purchases (solo fuente Northwind:
// Purchase Order Details ⋈ Purchase Orders). Fecha, proveedor y producto son
// críticos; un empleado ausente se normaliza a 0.
func transformPurchases(src *Sources, rejects Rejects) []entity.PurchasesFact {
	orders := indexByKey(src.Northwind[TablePurchaseOrders], "ID", "Purchase Order ID")

	var out []entity.PurchasesFact
	for _, d := range src.Northwind[TablePurchaseDetails] {
		poID, ok := toInt64(d.Get("Purchase Order ID"))
		if !ok {
			rejects.add("fact_purchases", 1)
			continue
		}
		order, ok := orders[poID]
		if !ok {
			rejects.add("fact_purchases", 1)
			continue
		}
		creationDate, dateOK := toDate(order.Get("Creation Date"))
		supplierKey, suppOK := toInt64(order.Get("Supplier ID"))
		productKey, prodOK := toInt64(d.Get("Product ID"))
		if !dateOK || !suppOK || !prodOK {
			rejects.add("fact_purchases", 1)
			continue
		}
		employeeKey, _ := toInt64(order.Get("Created By"))
		quantity, _ := toInt64(d.Get("Quantity"))
		unitCost, _ := toDecimal(d.Get("Unit Cost"))

		out = append(out, entity.PurchasesFact{
			CreationDate:      creationDate,
			SupplierKey:       supplierKey,
			EmployeeKey:       employeeKey,
			ProductKey:        productKey,
			Quantity:          quantity,
			UnitCost:          unitCost,
			TotalPurchaseCost: unitCost.Mul(decimal.NewFromInt(quantity)),
		})
	}
	return out
}

// TransformResult salida de la fase de transformación.
type TransformResult struct {
	Schema  *entity.StarSchema
	Offsets KeyOffsets
	Rejects Rejects
}

// Transform convierte las tablas crudas en el esquema en estrella completo.
// Función pura: no toca la base ni estado global, y es determinista.
func Transform(src *Sources) *TransformResult {
	rejects := make(Rejects)
	var off KeyOffsets

	schema := &entity.StarSchema{}
	schema.Products, off.Product = transformProducts(src, rejects)
	schema.Customers, off.Customer = transformCustomers(src, rejects)
	schema.Employees, off.Employee = transformEmployees(src, rejects)
	schema.Suppliers, off.Supplier = transformSuppliers(src, rejects)
	schema.Sales = transformSales(src, off, rejects)
	schema.Purchases = transformPurchases(src, rejects)

	return &TransformResult{Schema: schema, Offsets: off, Rejects: rejects}
}
