package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/northwind-dwh/internal/application/analytics"
	"github.com/jhoicas/northwind-dwh/internal/application/dto"
)

type capturePDF struct {
	data *dto.SalesReportDataDTO
	err  error
}

func (c *capturePDF) GenerateSalesReport(_ context.Context, data *dto.SalesReportDataDTO) ([]byte, error) {
	c.data = data
	if c.err != nil {
		return nil, c.err
	}
	return []byte("%PDF-1.7"), nil
}

func TestGenerateSalesReport_ArmaLosDatos(t *testing.T) {
	repo := newFakeRepo()
	pdf := &capturePDF{}
	uc := appanalytics.NewReportUseCase(appanalytics.NewDashboardUseCase(repo), pdf)

	out, err := uc.GenerateSalesReport(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	require.NotNil(t, pdf.data)
	assert.False(t, pdf.data.GeneratedAt.IsZero())
	assert.Equal(t, int64(40), pdf.data.Summary.TotalOrders)
	assert.Equal(t, 10, repo.topLimit, "el reporte usa el top 10 de productos")
}

func TestGenerateSalesReport_PropagaErrorDelRender(t *testing.T) {
	repo := newFakeRepo()
	pdf := &capturePDF{err: errors.New("fuente no embebida")}
	uc := appanalytics.NewReportUseCase(appanalytics.NewDashboardUseCase(repo), pdf)

	_, err := uc.GenerateSalesReport(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render PDF")
}
