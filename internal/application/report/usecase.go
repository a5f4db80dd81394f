package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/domain"
	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

// UseCase reporte mensual de dispensaciones aprobadas, exportable como hoja
// de cálculo (por defecto) o PDF. Solo admin.
type UseCase struct {
	disbRepo    repository.DisbursementRepository
	spreadsheet SpreadsheetExporter
	pdf         PDFExporter
}

// NewUseCase construye el caso de uso.
func NewUseCase(disbRepo repository.DisbursementRepository, spreadsheet SpreadsheetExporter, pdf PDFExporter) *UseCase {
	return &UseCase{disbRepo: disbRepo, spreadsheet: spreadsheet, pdf: pdf}
}

// MonthlyDisbursements arma las filas del mes (formato "YYYY-MM"): solo
// solicitudes Approved cuya fecha de resolución cae dentro del mes, en
// orden cronológico ascendente.
func (uc *UseCase) MonthlyDisbursements(actor entity.Actor, month string) ([]dto.DisbursementReportRow, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	monthStart, err := time.Parse(dto.MonthLayout, month)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	records, err := uc.disbRepo.ListByStatus(entity.DisbursementStatusApproved)
	if err != nil {
		return nil, err
	}

	var selected []entity.DisbursementRecord
	for _, rec := range records {
		if rec.ApprovalDate == nil {
			continue
		}
		if rec.ApprovalDate.Before(monthStart) || !rec.ApprovalDate.Before(monthEnd) {
			continue
		}
		selected = append(selected, rec)
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].ApprovalDate.Before(*selected[j].ApprovalDate)
	})

	rows := make([]dto.DisbursementReportRow, 0, len(selected))
	for _, rec := range selected {
		rows = append(rows, dto.DisbursementReportRow{
			ApprovalDate: rec.ApprovalDate.Format("2006-01-02 15:04"),
			DrugName:     rec.DrugName,
			Quantity:     rec.QuantityDisbursed,
			Unit:         rec.Unit,
			RequestedBy:  rec.RequestedBy,
			ApprovedBy:   rec.ApprovedBy,
		})
	}
	return rows, nil
}

// Export genera el archivo del reporte. El nombre queda parametrizado por
// el mes seleccionado. Mes sin dispensaciones aprobadas → ErrNotFound.
func (uc *UseCase) Export(actor entity.Actor, month, format string) (data []byte, filename string, err error) {
	rows, err := uc.MonthlyDisbursements(actor, month)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", domain.ErrNotFound
	}

	switch format {
	case "", FormatXLSX:
		data, err = uc.spreadsheet.ExportDisbursementReport(month, rows)
		filename = fmt.Sprintf("reporte-dispensaciones-%s.xlsx", month)
	case FormatPDF:
		data, err = uc.pdf.ExportDisbursementReport(month, rows)
		filename = fmt.Sprintf("reporte-dispensaciones-%s.pdf", month)
	default:
		return nil, "", domain.ErrInvalidInput
	}
	if err != nil {
		return nil, "", fmt.Errorf("exportar reporte: %w", err)
	}
	return data, filename, nil
}
