package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/northwind-dwh/internal/application/dto"
)

const reportTopProducts = 10

// ReportUseCase genera el reporte de ventas en PDF: reúne los agregados vía
// el DashboardUseCase y delega el render en el generador.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	pdf       SalesReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard *DashboardUseCase, pdf SalesReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, pdf: pdf}
}

// GenerateSalesReport arma los datos del reporte y devuelve el PDF en bytes.
func (uc *ReportUseCase) GenerateSalesReport(ctx context.Context) ([]byte, error) {
	summary, err := uc.dashboard.GetSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: %w", err)
	}
	top, err := uc.dashboard.GetTopProducts(ctx, reportTopProducts)
	if err != nil {
		return nil, fmt.Errorf("reporte: %w", err)
	}
	monthly, err := uc.dashboard.GetMonthlyRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: %w", err)
	}

	data := &dto.SalesReportDataDTO{
		GeneratedAt: time.Now(),
		Summary:     *summary,
		TopProducts: top,
		Monthly:     monthly,
	}
	pdf, err := uc.pdf.GenerateSalesReport(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("reporte: render PDF: %w", err)
	}
	return pdf, nil
}
