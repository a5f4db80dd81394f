// Package pdf implementa la versión imprimible del reporte mensual de
// dispensaciones aprobadas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + mes del reporte                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Medicamento | Cant | Unidad | Sol. | Aprob. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total de dispensaciones y unidades entregadas         │
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

	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 46, Green: 125, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Verificar en tiempo de compilación que MarotoReportGenerator implementa PDFExporter.
var _ report.PDFExporter = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.PDFExporter usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// ExportDisbursementReport genera el PDF del mes y devuelve sus bytes.
func (g *MarotoReportGenerator) ExportDisbursementReport(month string, rows []dto.DisbursementReportRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de dispensaciones "+month, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(month))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rows) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del reporte + mes.
func headerRow(month string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE DISPENSACIONES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Solicitudes aprobadas del período", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Mes: "+month, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 4,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de dispensaciones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Medicamento", 4, align.Left),
		h("Cant.", 1, align.Center),
		h("Unidad", 1, align.Center),
		h("Solicitado por", 2, align.Left),
		h("Aprobado por", 2, align.Left),
	)
}

// tableRows: una fila por dispensación aprobada.
func tableRows(rows []dto.DisbursementReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(r.ApprovalDate, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(4).Add(text.New(r.DrugName, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Quantity), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(1).Add(text.New(r.Unit, props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(r.RequestedBy, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(r.ApprovedBy, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
		))
	}
	return result
}

// summaryRow: totales del período.
func summaryRow(rows []dto.DisbursementReportRow) core.Row {
	totalUnits := 0
	for _, r := range rows {
		totalUnits += r.Quantity
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total: %d dispensaciones, %d unidades entregadas", len(rows), totalUnits), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}
