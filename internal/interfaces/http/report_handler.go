package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/northwind-dwh/internal/application/analytics"
	"github.com/jhoicas/northwind-dwh/internal/application/dto"
)

// ReportHandler maneja la descarga de reportes en PDF.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// GetSalesReport genera y descarga el reporte de ventas en PDF.
// GET /api/reports/sales.pdf
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	pdf, err := h.uc.GenerateSalesReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	filename := fmt.Sprintf("reporte-ventas-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
