package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/northwind-dwh/internal/application/analytics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
}

// Router registra las rutas de la API de lectura del warehouse.
// Todos los endpoints son GET: la escritura ocurre solo vía el binario de ETL.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)

	// KPIs globales
	dashboard := api.Group("/dashboard")
	dashboard.Get("/summary", dashboardHandler.GetSummary)

	// Ventas
	sales := api.Group("/sales")
	sales.Get("/monthly", dashboardHandler.GetMonthlyRevenue)
	sales.Get("/by-category", dashboardHandler.GetSalesByCategory)
	sales.Get("/by-country", dashboardHandler.GetSalesByCountry)
	sales.Get("/status", dashboardHandler.GetOrderStatus)

	// Productos
	products := api.Group("/products")
	products.Get("/top", dashboardHandler.GetTopProducts)

	// Compras
	purchases := api.Group("/purchases")
	purchases.Get("/by-supplier", dashboardHandler.GetPurchasesBySupplier)

	// Reportes PDF
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/sales.pdf", reportHandler.GetSalesReport)
}
