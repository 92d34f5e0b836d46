package entity

// StarSchema resultado completo de la fase de transformación: las cuatro
// dimensiones y las dos tablas de hechos listas para cargar. Es una estructura
// puramente en memoria; la carga la reemplaza entera en la base (sin merge ni
// actualización parcial).
type StarSchema struct {
	Products  []DimProduct
	Customers []DimCustomer
	Employees []DimEmployee
	Suppliers []DimSupplier
	Sales     []SalesFact
	Purchases []PurchasesFact
}

// IsEmpty indica si no hay nada que cargar (ni dimensiones ni hechos).
func (s *StarSchema) IsEmpty() bool {
	return len(s.Products) == 0 && len(s.Customers) == 0 &&
		len(s.Employees) == 0 && len(s.Suppliers) == 0 &&
		len(s.Sales) == 0 && len(s.Purchases) == 0
}
