// Package stock contiene la evaluación pura del estado de stock de un
// medicamento. Es la única pieza de lógica derivada que comparten el
// dashboard, el inventario y los reportes.
package stock

import (
	"time"

	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
)

// Status clasificación derivada de urgencia de un medicamento.
type Status string

const (
	StatusInStock      Status = "IN_STOCK"
	StatusLowStock     Status = "LOW_STOCK"
	StatusOutOfStock   Status = "OUT_OF_STOCK"
	StatusExpiringSoon Status = "EXPIRING_SOON"
	StatusExpired      Status = "EXPIRED"
)

// Umbrales de clasificación.
const (
	// LowStockThreshold: por debajo de esta cantidad el medicamento está "por agotarse".
	LowStockThreshold = 20
	// ExpiryWindowDays: ventana de "próximo a vencer" en días.
	ExpiryWindowDays = 90
)

// Evaluate clasifica un medicamento según su cantidad y fecha de vencimiento
// respecto de today. La evaluación es un orden total con prioridad fija
// (gana la primera condición que aplica, no son banderas independientes):
//
//  1. Expired: vencimiento estrictamente anterior al inicio del día de hoy.
//  2. ExpiringSoon: vencimiento dentro de los próximos 90 días.
//  3. OutOfStock: cantidad cero.
//  4. LowStock: cantidad estrictamente menor que 20.
//  5. InStock: en cualquier otro caso.
//
// La comparación es a granularidad de día: la hora se descarta. Un
// medicamento vencido con cantidad cero reporta Expired, no OutOfStock.
func Evaluate(quantity int, expiry, today time.Time) Status {
	startOfToday := truncateToDay(today)
	expiryDay := truncateToDay(expiry)
	windowEnd := startOfToday.AddDate(0, 0, ExpiryWindowDays)

	switch {
	case expiryDay.Before(startOfToday):
		return StatusExpired
	case expiryDay.Before(windowEnd):
		return StatusExpiringSoon
	case quantity == 0:
		return StatusOutOfStock
	case quantity < LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// EvaluateDrug es el atajo para evaluar una entidad completa.
func EvaluateDrug(d *entity.Drug, today time.Time) Status {
	return Evaluate(d.Quantity, d.ExpiryDate, today)
}

// Summary cuenta medicamentos por estado (para el dashboard).
type Summary struct {
	Total        int
	InStock      int
	LowStock     int
	OutOfStock   int
	ExpiringSoon int
	Expired      int
}

// Summarize evalúa todos los medicamentos y acumula los conteos.
func Summarize(drugs []entity.Drug, today time.Time) Summary {
	var s Summary
	s.Total = len(drugs)
	for i := range drugs {
		switch EvaluateDrug(&drugs[i], today) {
		case StatusInStock:
			s.InStock++
		case StatusLowStock:
			s.LowStock++
		case StatusOutOfStock:
			s.OutOfStock++
		case StatusExpiringSoon:
			s.ExpiringSoon++
		case StatusExpired:
			s.Expired++
		}
	}
	return s
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
