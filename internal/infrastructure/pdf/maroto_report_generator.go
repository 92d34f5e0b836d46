// Package pdf implementa el render del reporte de ventas del warehouse con
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Northwind Traders / Reporte de Ventas │ Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: ingresos / pedidos / ticket promedio / compras        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Top productos (Rank | Producto | Cat | Unid | $)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ingresos por mes (Mes | Pedidos | Ingresos)          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appanalytics "github.com/jhoicas/northwind-dwh/internal/application/analytics"
	"github.com/jhoicas/northwind-dwh/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.SalesReportPDFGenerator usando
// Maroto v2.
type MarotoReportGenerator struct{}

var _ appanalytics.SalesReportPDFGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSalesReport genera el PDF del reporte de ventas y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesReport(
	_ context.Context,
	data *dto.SalesReportDataDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Northwind Traders - Reporte de Ventas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(data.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("TOP PRODUCTOS POR INGRESO"))
	m.AddRows(productsHeaderRow())
	for _, r := range productRows(data.TopProducts) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("INGRESOS POR MES"))
	m.AddRows(monthlyHeaderRow())
	for _, r := range monthlyRows(data.Monthly) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del reporte (izq) y fecha de generación (der).
func headerRow(data *dto.SalesReportDataDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Northwind Traders", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de Ventas del Data Warehouse", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// kpiRow: los cuatro indicadores principales en una fila.
func kpiRow(s dto.DashboardSummaryDTO) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Size: 7, Align: align.Center, Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center,
				Color: colorPrimary, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		kpi("INGRESOS TOTALES", "$"+s.TotalRevenue.StringFixed(2)),
		kpi("PEDIDOS", fmt.Sprintf("%d", s.TotalOrders)),
		kpi("TICKET PROMEDIO", "$"+s.AvgOrderValue.StringFixed(2)),
		kpi("COSTO DE COMPRAS", "$"+s.PurchasesCost.StringFixed(2)),
	)
}

// sectionTitleRow: título de sección.
func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		})),
	)
}

// productsHeaderRow: cabecera de la tabla de productos.
func productsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("#", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Categoría", 2, align.Left),
		h("Unidades", 2, align.Right),
		h("Ingresos", 2, align.Right),
	)
}

// productRows: una fila por producto del ranking.
func productRows(products []dto.TopProductDTO) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", p.Rank),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				p.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(2).Add(text.New(
				p.Category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", p.QuantitySold),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+p.Revenue.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
		))
	}
	return result
}

// monthlyHeaderRow: cabecera de la tabla mensual.
func monthlyHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Mes", 4, align.Left),
		h("Pedidos", 4, align.Right),
		h("Ingresos", 4, align.Right),
	)
}

// monthlyRows: una fila por mes.
func monthlyRows(monthly []dto.MonthlyRevenueDTO) []core.Row {
	result := make([]core.Row, 0, len(monthly))
	for _, mo := range monthly {
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(
				mo.Label,
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(4).Add(text.New(
				fmt.Sprintf("%d", mo.Orders),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(4).Add(text.New(
				"$"+mo.Revenue.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
		))
	}
	return result
}
