package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	appexcel "github.com/tu-usuario/farmacia-stock/internal/infrastructure/excel"
)

func TestExportDisbursementReport_LayoutDeSeisColumnas(t *testing.T) {
	rows := []dto.DisbursementReportRow{
		{
			ApprovalDate: "2026-08-02 10:30",
			DrugName:     "Amoxicilina 250mg",
			Quantity:     20,
			Unit:         "cápsulas",
			RequestedBy:  "farmaceutico",
			ApprovedBy:   "admin",
		},
		{
			ApprovalDate: "2026-08-15 16:05",
			DrugName:     "Paracetamol 500mg",
			Quantity:     5,
			Unit:         "tabletas",
			RequestedBy:  "farmaceutico",
			ApprovedBy:   "admin",
		},
	}

	data, err := appexcel.NewExporter().ExportDisbursementReport("2026-08", rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err, "la salida debe ser un .xlsx válido")
	defer f.Close()

	sheets := f.GetSheetList()
	require.Equal(t, []string{"Dispensaciones"}, sheets, "una única hoja con nombre propio")

	got, err := f.GetRows("Dispensaciones")
	require.NoError(t, err)
	require.Len(t, got, 3, "encabezado + dos filas de datos")

	assert.Equal(t, []string{
		"Fecha de aprobación", "Medicamento", "Cantidad", "Unidad", "Solicitado por", "Aprobado por",
	}, got[0])
	assert.Equal(t, []string{"2026-08-02 10:30", "Amoxicilina 250mg", "20", "cápsulas", "farmaceutico", "admin"}, got[1])
	assert.Equal(t, []string{"2026-08-15 16:05", "Paracetamol 500mg", "5", "tabletas", "farmaceutico", "admin"}, got[2])
}

func TestExportDisbursementReport_SinFilas(t *testing.T) {
	data, err := appexcel.NewExporter().ExportDisbursementReport("2026-09", nil)
	require.NoError(t, err, "el generador no decide sobre meses vacíos; eso es del caso de uso")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Dispensaciones")
	require.NoError(t, err)
	assert.Len(t, got, 1, "solo el encabezado")
}
