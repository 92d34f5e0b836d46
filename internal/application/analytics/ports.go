package analytics

import (
	"context"

	"github.com/jhoicas/northwind-dwh/internal/application/dto"
)

// SalesReportPDFGenerator puerto de render del reporte de ventas en PDF.
type SalesReportPDFGenerator interface {
	GenerateSalesReport(ctx context.Context, data *dto.SalesReportDataDTO) ([]byte, error)
}
