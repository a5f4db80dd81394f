package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/application/report"
)

// Verificar en tiempo de compilación que Exporter implementa SpreadsheetExporter.
var _ report.SpreadsheetExporter = (*Exporter)(nil)

const reportSheet = "Dispensaciones"

// headerCells encabezados de las seis columnas del reporte, en orden fijo.
var headerCells = []string{
	"Fecha de aprobación",
	"Medicamento",
	"Cantidad",
	"Unidad",
	"Solicitado por",
	"Aprobado por",
}

// columnWidths ancho de cada columna (A..F).
var columnWidths = []float64{20, 35, 12, 15, 20, 20}

// Exporter genera el reporte mensual de dispensaciones en formato .xlsx.
type Exporter struct{}

// NewExporter crea el generador de hojas de cálculo.
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportDisbursementReport arma el libro: una hoja con encabezado y una fila
// por dispensación aprobada del mes.
func (e *Exporter) ExportDisbursementReport(month string, rows []dto.DisbursementReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("eliminar hoja por defecto: %w", err)
	}

	for col, width := range columnWidths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(reportSheet, name, name, width); err != nil {
			return nil, fmt.Errorf("ancho de columna %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2E7D32"}},
	})
	if err != nil {
		return nil, fmt.Errorf("estilo de encabezado: %w", err)
	}

	for col, title := range headerCells {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(reportSheet, cell, title); err != nil {
			return nil, fmt.Errorf("celda %s: %w", cell, err)
		}
	}
	if err := f.SetCellStyle(reportSheet, "A1", "F1", headerStyle); err != nil {
		return nil, fmt.Errorf("aplicar estilo de encabezado: %w", err)
	}

	for i, row := range rows {
		values := []interface{}{
			row.ApprovalDate,
			row.DrugName,
			row.Quantity,
			row.Unit,
			row.RequestedBy,
			row.ApprovedBy,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(reportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("celda %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
