package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/northwind-dwh/internal/application/analytics"
	"github.com/jhoicas/northwind-dwh/internal/application/dto"
)

// DashboardHandler maneja los endpoints de lectura del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los KPIs globales del warehouse.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_revenue, total_orders,
// avg_order_value, purchases_cost, delivered_pct, generated_at).
// No requiere parámetros.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}

// GetMonthlyRevenue ingresos por mes en orden cronológico.
// GET /api/sales/monthly
func (h *DashboardHandler) GetMonthlyRevenue(c *fiber.Ctx) error {
	rows, err := h.uc.GetMonthlyRevenue(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(rows)
}

// GetSalesByCategory ingresos por categoría de producto.
// GET /api/sales/by-category
func (h *DashboardHandler) GetSalesByCategory(c *fiber.Ctx) error {
	rows, err := h.uc.GetSalesByCategory(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(rows)
}

// GetSalesByCountry ingresos por país del cliente.
// GET /api/sales/by-country?limit=N
func (h *DashboardHandler) GetSalesByCountry(c *fiber.Ctx) error {
	rows, err := h.uc.GetSalesByCountry(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(rows)
}

// GetOrderStatus pedidos agrupados por estado.
// GET /api/sales/status
func (h *DashboardHandler) GetOrderStatus(c *fiber.Ctx) error {
	rows, err := h.uc.GetOrderStatus(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(rows)
}

// GetTopProducts ranking de productos por ingreso.
// GET /api/products/top?limit=N
func (h *DashboardHandler) GetTopProducts(c *fiber.Ctx) error {
	rows, err := h.uc.GetTopProducts(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(rows)
}

// GetPurchasesBySupplier compras agrupadas por proveedor.
// GET /api/purchases/by-supplier?limit=N
func (h *DashboardHandler) GetPurchasesBySupplier(c *fiber.Ctx) error {
	rows, err := h.uc.GetPurchasesBySupplier(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(rows)
}
