package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/application/report"
	"github.com/tu-usuario/farmacia-stock/internal/domain"
	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/infrastructure/memory"
)

var (
	admin   = entity.Actor{ID: "u-001", Username: "admin", Role: entity.RoleAdmin}
	regular = entity.Actor{ID: "u-002", Username: "farmaceutico", Role: entity.RoleUser}
)

// fakeExporter registra la llamada y devuelve bytes reconocibles.
type fakeExporter struct {
	month string
	rows  []dto.DisbursementReportRow
	out   []byte
}

func (f *fakeExporter) ExportDisbursementReport(month string, rows []dto.DisbursementReportRow) ([]byte, error) {
	f.month = month
	f.rows = rows
	return f.out, nil
}

func date(day, hour int) *time.Time {
	d := time.Date(2026, 8, day, hour, 0, 0, 0, time.UTC)
	return &d
}

func newUseCase(t *testing.T) (*report.UseCase, *fakeExporter, *fakeExporter) {
	t.Helper()
	store := memory.NewStore()
	disbRepo := memory.NewDisbursementRepository(store)

	records := []entity.DisbursementRecord{
		// Aprobada en agosto, la más tardía primero para verificar el reordenamiento.
		{ID: "r-2", DrugID: "d-1", DrugName: "Paracetamol 500mg", QuantityDisbursed: 5,
			Unit: "tabletas", RequestedBy: "farmaceutico", Status: entity.DisbursementStatusApproved,
			ApprovalDate: date(15, 16), ApprovedBy: "admin"},
		{ID: "r-1", DrugID: "d-2", DrugName: "Amoxicilina 250mg", QuantityDisbursed: 20,
			Unit: "cápsulas", RequestedBy: "farmaceutico", Status: entity.DisbursementStatusApproved,
			ApprovalDate: date(2, 10), ApprovedBy: "admin"},
		// Rechazada el mismo mes: no aparece en el reporte.
		{ID: "r-3", DrugID: "d-1", DrugName: "Paracetamol 500mg", QuantityDisbursed: 99,
			Unit: "tabletas", RequestedBy: "farmaceutico", Status: entity.DisbursementStatusRejected,
			ApprovalDate: date(10, 9), ApprovedBy: "admin"},
		// Pendiente: sin fecha de resolución.
		{ID: "r-4", DrugID: "d-1", DrugName: "Paracetamol 500mg", QuantityDisbursed: 3,
			Unit: "tabletas", RequestedBy: "farmaceutico", Status: entity.DisbursementStatusPending},
		// Aprobada en otro mes.
		{ID: "r-5", DrugID: "d-2", DrugName: "Amoxicilina 250mg", QuantityDisbursed: 7,
			Unit: "cápsulas", RequestedBy: "farmaceutico", Status: entity.DisbursementStatusApproved,
			ApprovalDate: func() *time.Time { d := time.Date(2026, 7, 31, 23, 59, 0, 0, time.UTC); return &d }(),
			ApprovedBy: "admin"},
	}
	for i := range records {
		require.NoError(t, disbRepo.Create(&records[i]))
	}

	xlsx := &fakeExporter{out: []byte("xlsx-bytes")}
	pdf := &fakeExporter{out: []byte("pdf-bytes")}
	return report.NewUseCase(disbRepo, xlsx, pdf), xlsx, pdf
}

func TestMonthlyDisbursements_SoloAprobadasDelMesEnOrdenCronologico(t *testing.T) {
	uc, _, _ := newUseCase(t)

	rows, err := uc.MonthlyDisbursements(admin, "2026-08")
	require.NoError(t, err)
	require.Len(t, rows, 2, "solo las aprobadas cuya resolución cae en el mes")

	assert.Equal(t, "Amoxicilina 250mg", rows[0].DrugName, "orden cronológico ascendente")
	assert.Equal(t, "2026-08-02 10:00", rows[0].ApprovalDate)
	assert.Equal(t, "Paracetamol 500mg", rows[1].DrugName)
	assert.Equal(t, 20, rows[0].Quantity)
	assert.Equal(t, "admin", rows[0].ApprovedBy)
}

func TestMonthlyDisbursements_SoloAdmin(t *testing.T) {
	uc, _, _ := newUseCase(t)
	_, err := uc.MonthlyDisbursements(regular, "2026-08")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMonthlyDisbursements_MesInvalido(t *testing.T) {
	uc, _, _ := newUseCase(t)
	for _, month := range []string{"", "agosto", "2026-13", "2026-08-01"} {
		_, err := uc.MonthlyDisbursements(admin, month)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "mes %q debe rechazarse", month)
	}
}

func TestExport_NombreDeArchivoParametrizadoPorMes(t *testing.T) {
	uc, xlsx, pdf := newUseCase(t)

	data, filename, err := uc.Export(admin, "2026-08", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx-bytes"), data)
	assert.Equal(t, "reporte-dispensaciones-2026-08.xlsx", filename)
	assert.Equal(t, "2026-08", xlsx.month)
	assert.Len(t, xlsx.rows, 2)

	data, filename, err = uc.Export(admin, "2026-08", report.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), data)
	assert.Equal(t, "reporte-dispensaciones-2026-08.pdf", filename)
	assert.Equal(t, "2026-08", pdf.month)
}

func TestExport_MesSinAprobadas(t *testing.T) {
	uc, _, _ := newUseCase(t)
	_, _, err := uc.Export(admin, "2026-09", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExport_FormatoDesconocido(t *testing.T) {
	uc, _, _ := newUseCase(t)
	_, _, err := uc.Export(admin, "2026-08", "csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
