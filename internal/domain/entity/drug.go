package entity

import "time"

// Drug representa un medicamento del inventario de la farmacia.
// Quantity es un contador entero de unidades (tabletas, frascos, sobres);
// nunca puede quedar negativo. ExpiryDate tiene granularidad de día.
type Drug struct {
	ID         string
	Name       string
	Quantity   int
	Unit       string // etiqueta de la unidad: tableta, frasco, sobre...
	ExpiryDate time.Time
	Location   string // ubicación física: estante, nivel
	Notes      string
	Image      string // referencia opcional a la imagen (URL o data URI)
}
