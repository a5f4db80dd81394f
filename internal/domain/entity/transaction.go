package entity

import "time"

// Tipos de transacción del libro de movimientos.
const (
	TransactionTypeInitial      = "INITIAL"      // alta individual de un medicamento
	TransactionTypeStockIn      = "STOCK_IN"     // entrada por importación masiva
	TransactionTypeDisbursement = "DISBURSEMENT" // salida por solicitud aprobada
	TransactionTypeAdjustment   = "ADJUSTMENT"   // ajuste manual o de corrección
)

// ValidTransactionType indica si el tipo pertenece al conjunto conocido.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeInitial, TransactionTypeStockIn, TransactionTypeDisbursement, TransactionTypeAdjustment:
		return true
	}
	return false
}

// Transaction es una entrada inmutable del libro de movimientos.
// DrugName se desnormaliza en el momento del registro (no se hace join
// en vivo): si el medicamento se elimina, la entrada conserva el nombre.
// Invariante: QuantityAfter es la cantidad exacta del medicamento
// inmediatamente después del evento que produjo la entrada.
type Transaction struct {
	ID             string
	DrugID         string
	DrugName       string
	Type           string
	QuantityChange int // delta con signo: positivo entrada, negativo salida
	QuantityAfter  int
	Reason         string
	Timestamp      time.Time
	User           string // username de quien ejecutó la acción
}
