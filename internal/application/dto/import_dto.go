package dto

// ImportDrugRow fila validada del archivo de importación masiva.
// Las seis columnas en orden fijo: nombre, cantidad, unidad, vencimiento,
// ubicación, notas (la última opcional).
type ImportDrugRow struct {
	Name       string
	Quantity   int
	Unit       string
	ExpiryDate string // YYYY-MM-DD
	Location   string
	Notes      string
}

// ImportResult resumen de una importación masiva.
type ImportResult struct {
	Imported int            `json:"imported"`
	Drugs    []DrugResponse `json:"drugs"`
}
