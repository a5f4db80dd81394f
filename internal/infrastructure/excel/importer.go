package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/domain"
)

// Layouts de fecha aceptados en la columna de vencimiento. El primero es el
// canónico; los demás cubren celdas formateadas por Excel.
var importDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"01-02-06",
}

// Importer lee archivos .xlsx de carga masiva de medicamentos.
// Layout fijo de seis columnas: nombre, cantidad, unidad, vencimiento,
// ubicación, notas. La primera fila es el encabezado y se descarta.
type Importer struct{}

// NewImporter crea el lector de archivos de importación.
func NewImporter() *Importer {
	return &Importer{}
}

// ParseDrugRows valida el archivo completo y devuelve las filas listas para
// importar. Cualquier fila inválida aborta la importación con un error que
// indica el número de fila (1-based, contando el encabezado).
func (i *Importer) ParseDrugRows(r io.Reader) ([]dto.ImportDrugRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: archivo .xlsx inválido", domain.ErrInvalidInput)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: el archivo no tiene hojas", domain.ErrInvalidInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: el archivo no tiene filas de datos", domain.ErrInvalidInput)
	}

	parsed := make([]dto.ImportDrugRow, 0, len(rows)-1)
	for idx, row := range rows[1:] { // saltar encabezado
		rowNum := idx + 2
		if emptyRow(row) {
			continue
		}
		drugRow, err := parseRow(row, rowNum)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, drugRow)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("%w: el archivo no tiene filas de datos", domain.ErrInvalidInput)
	}
	return parsed, nil
}

func parseRow(row []string, rowNum int) (dto.ImportDrugRow, error) {
	cell := func(n int) string {
		if n < len(row) {
			return strings.TrimSpace(row[n])
		}
		return ""
	}

	name := cell(0)
	if name == "" {
		return dto.ImportDrugRow{}, fmt.Errorf("%w: fila %d: el nombre es obligatorio", domain.ErrInvalidInput, rowNum)
	}

	qtyRaw := cell(1)
	qty, err := strconv.Atoi(qtyRaw)
	if err != nil || qty < 0 {
		return dto.ImportDrugRow{}, fmt.Errorf("%w: fila %d: cantidad inválida %q", domain.ErrInvalidInput, rowNum, qtyRaw)
	}

	unit := cell(2)
	if unit == "" {
		return dto.ImportDrugRow{}, fmt.Errorf("%w: fila %d: la unidad es obligatoria", domain.ErrInvalidInput, rowNum)
	}

	expiryRaw := cell(3)
	expiry, err := parseDate(expiryRaw)
	if err != nil {
		return dto.ImportDrugRow{}, fmt.Errorf("%w: fila %d: fecha de vencimiento inválida %q", domain.ErrInvalidInput, rowNum, expiryRaw)
	}

	location := cell(4)
	if location == "" {
		return dto.ImportDrugRow{}, fmt.Errorf("%w: fila %d: la ubicación es obligatoria", domain.ErrInvalidInput, rowNum)
	}

	return dto.ImportDrugRow{
		Name:       name,
		Quantity:   qty,
		Unit:       unit,
		ExpiryDate: expiry.Format(dto.DateLayout),
		Location:   location,
		Notes:      cell(5),
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("formato de fecha no reconocido")
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
