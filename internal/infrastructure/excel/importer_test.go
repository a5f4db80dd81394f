package excel_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/farmacia-stock/internal/domain"
	appexcel "github.com/tu-usuario/farmacia-stock/internal/infrastructure/excel"
)

// buildWorkbook arma un .xlsx en memoria con encabezado fijo más las filas dadas.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"Nombre", "Cantidad", "Unidad", "Vencimiento", "Ubicación", "Notas"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseDrugRows_ArchivoValido(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Paracetamol 500mg", "100", "tabletas", "2027-05-01", "Estante A", "uso general"},
		{"Ibuprofeno 400mg", "50", "tabletas", "2027-01-15", "Estante B", ""},
	})

	rows, err := appexcel.NewImporter().ParseDrugRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Paracetamol 500mg", rows[0].Name)
	assert.Equal(t, 100, rows[0].Quantity)
	assert.Equal(t, "tabletas", rows[0].Unit)
	assert.Equal(t, "2027-05-01", rows[0].ExpiryDate)
	assert.Equal(t, "Estante A", rows[0].Location)
	assert.Equal(t, "uso general", rows[0].Notes)
	assert.Empty(t, rows[1].Notes, "la columna de notas es opcional")
}

// El encabezado se descarta siempre, no se intenta interpretar como datos.
func TestParseDrugRows_SaltaElEncabezado(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Omeprazol 20mg", "40", "cápsulas", "2027-06-01", "B2", ""},
	})

	rows, err := appexcel.NewImporter().ParseDrugRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Omeprazol 20mg", rows[0].Name)
}

// El error de una fila inválida identifica el número de fila del archivo.
func TestParseDrugRows_ErrorIndicaNumeroDeFila(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Válido", "10", "tabletas", "2027-05-01", "A1", ""},
		{"Cantidad rota", "muchas", "tabletas", "2027-05-01", "A1", ""}, // fila 3 del archivo
	})

	_, err := appexcel.NewImporter().ParseDrugRows(buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "fila 3", "el mensaje debe ubicar la fila ofensora")
}

func TestParseDrugRows_FechaInvalida(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"X", "10", "tabletas", "pronto", "A1", ""},
	})

	_, err := appexcel.NewImporter().ParseDrugRows(buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "fila 2")
}

func TestParseDrugRows_CantidadNegativa(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"X", "-3", "tabletas", "2027-05-01", "A1", ""},
	})

	_, err := appexcel.NewImporter().ParseDrugRows(buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseDrugRows_SinFilasDeDatos(t *testing.T) {
	buf := buildWorkbook(t, nil)

	_, err := appexcel.NewImporter().ParseDrugRows(buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseDrugRows_ArchivoCorrupto(t *testing.T) {
	_, err := appexcel.NewImporter().ParseDrugRows(bytes.NewReader([]byte("esto no es un xlsx")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Las filas completamente vacías (frecuentes al final de hojas editadas a
// mano) se ignoran en lugar de abortar el lote.
func TestParseDrugRows_IgnoraFilasVacias(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Válido", "10", "tabletas", "2027-05-01", "A1", ""},
		{"", "", "", "", "", ""},
	})

	rows, err := appexcel.NewImporter().ParseDrugRows(buf)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
