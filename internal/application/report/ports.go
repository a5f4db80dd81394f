package report

import "github.com/tu-usuario/farmacia-stock/internal/application/dto"

// Formatos de exportación soportados.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// SpreadsheetExporter puerto de exportación a hoja de cálculo: una hoja por
// reporte, layout fijo de seis columnas.
type SpreadsheetExporter interface {
	ExportDisbursementReport(month string, rows []dto.DisbursementReportRow) ([]byte, error)
}

// PDFExporter puerto de exportación a PDF (representación imprimible del
// mismo reporte mensual).
type PDFExporter interface {
	ExportDisbursementReport(month string, rows []dto.DisbursementReportRow) ([]byte, error)
}
