package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/domain/stock"
)

// Fecha fija con componente horario no nulo, para verificar que la
// evaluación descarta la hora.
var today = time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)

func days(d int) time.Time {
	return today.AddDate(0, 0, d)
}

// ──────────────────────────────────────────────────────────────────────────────
// Prioridad del estado
// ──────────────────────────────────────────────────────────────────────────────

// Cantidad baja pero vencimiento cercano: gana el vencimiento.
func TestEvaluate_VencimientoCercanoGanaACantidadBaja(t *testing.T) {
	assert.Equal(t, stock.StatusExpiringSoon, stock.Evaluate(18, days(10), today),
		"18 unidades con vencimiento a 10 días debe reportar EXPIRING_SOON, no LOW_STOCK")
}

// Cantidad cero y ya vencido: gana el vencido.
func TestEvaluate_VencidoGanaAAgotado(t *testing.T) {
	assert.Equal(t, stock.StatusExpired, stock.Evaluate(0, days(-1), today),
		"cantidad cero con vencimiento de ayer debe reportar EXPIRED, no OUT_OF_STOCK")
}

// Cantidad cero dentro de la ventana de vencimiento: gana el vencimiento.
func TestEvaluate_ProximoAVencerGanaAAgotado(t *testing.T) {
	assert.Equal(t, stock.StatusExpiringSoon, stock.Evaluate(0, days(30), today))
}

// ──────────────────────────────────────────────────────────────────────────────
// Límites de cantidad
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_LimitesDeCantidad(t *testing.T) {
	farFuture := days(365)

	assert.Equal(t, stock.StatusOutOfStock, stock.Evaluate(0, farFuture, today))
	assert.Equal(t, stock.StatusLowStock, stock.Evaluate(1, farFuture, today))
	assert.Equal(t, stock.StatusLowStock, stock.Evaluate(19, farFuture, today),
		"19 está estrictamente por debajo del umbral de 20")
	assert.Equal(t, stock.StatusInStock, stock.Evaluate(20, farFuture, today),
		"20 unidades exactas ya no es stock bajo")
	assert.Equal(t, stock.StatusInStock, stock.Evaluate(150, farFuture, today))
}

// ──────────────────────────────────────────────────────────────────────────────
// Límites del vencimiento (granularidad de día)
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_LimitesDeVencimiento(t *testing.T) {
	// Vence hoy: todavía no está vencido, pero sí próximo a vencer.
	assert.Equal(t, stock.StatusExpiringSoon, stock.Evaluate(100, days(0), today))
	// Venció ayer.
	assert.Equal(t, stock.StatusExpired, stock.Evaluate(100, days(-1), today))
	// Día 89 de la ventana: dentro.
	assert.Equal(t, stock.StatusExpiringSoon, stock.Evaluate(100, days(89), today))
	// Día 90: fuera de la ventana.
	assert.Equal(t, stock.StatusInStock, stock.Evaluate(100, days(90), today))
}

// La hora del día no altera la clasificación: solo cuenta el día calendario.
func TestEvaluate_GranularidadDeDia(t *testing.T) {
	expiryMorning := time.Date(2026, 8, 15, 0, 1, 0, 0, time.UTC)
	todayNight := time.Date(2026, 8, 15, 23, 59, 0, 0, time.UTC)
	assert.NotEqual(t, stock.StatusExpired, stock.Evaluate(50, expiryMorning, todayNight),
		"vencer hoy a primera hora no es estar vencido, aunque la consulta sea de noche")
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen para el dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarize_CuentaPorEstado(t *testing.T) {
	drugs := []entity.Drug{
		{Quantity: 150, ExpiryDate: days(365)}, // IN_STOCK
		{Quantity: 18, ExpiryDate: days(180)},  // LOW_STOCK
		{Quantity: 0, ExpiryDate: days(200)},   // OUT_OF_STOCK
		{Quantity: 90, ExpiryDate: days(60)},   // EXPIRING_SOON
		{Quantity: 25, ExpiryDate: days(-30)},  // EXPIRED
	}
	s := stock.Summarize(drugs, today)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.InStock)
	assert.Equal(t, 1, s.LowStock)
	assert.Equal(t, 1, s.OutOfStock)
	assert.Equal(t, 1, s.ExpiringSoon)
	assert.Equal(t, 1, s.Expired)
}
