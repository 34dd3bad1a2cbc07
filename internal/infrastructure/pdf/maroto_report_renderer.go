// Package pdf renderiza reportes como documentos A4 usando Maroto v2.
//
// Layout del reporte mensual de ventas brutas:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cliente + código   │   Año fiscal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Variante | Cant | P.Unit | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL VENTA BRUTA                                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportRenderer renderiza el reporte mensual de ventas brutas en PDF.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// RenderMonthlyGrossSales genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportRenderer) RenderMonthlyGrossSales(report *dto.MonthlyGrossSalesReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas brutas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range report.Rows {
		m.AddRows(tableRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: cliente + código (izq) y año fiscal (der).
func headerRow(report *dto.MonthlyGrossSalesReportDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(report.Customer, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código: "+report.CustomerCode, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("VENTAS BRUTAS MENSUALES", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Año fiscal %d", report.FiscalYear), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}
	return row.New(7).Add(
		col.New(2).Add(text.New("Fecha", header)),
		col.New(3).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("Variante", header)),
		col.New(1).Add(text.New("Cant.", headerRight)),
		col.New(2).Add(text.New("P. Unitario", headerRight)),
		col.New(2).Add(text.New("Total", headerRight)),
	)
}

func tableRow(r dto.MonthlyGrossSalesRowDTO) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	return row.New(6).Add(
		col.New(2).Add(text.New(r.Date, cell)),
		col.New(3).Add(text.New(r.Product, cell)),
		col.New(2).Add(text.New(r.Variant, cell)),
		col.New(1).Add(text.New(r.SoldQuantity.String(), cellRight)),
		col.New(2).Add(text.New(r.GrossPrice.StringFixed(2), cellRight)),
		col.New(2).Add(text.New(r.GrossTotal.StringFixed(2), cellRight)),
	)
}

func totalRow(report *dto.MonthlyGrossSalesReportDTO) core.Row {
	return row.New(9).Add(
		col.New(8).Add(text.New("TOTAL VENTA BRUTA", props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New(report.TotalGross.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
		})),
	)
}
