package repository

import "github.com/tu-usuario/farmacia-stock/internal/domain/entity"

// TransactionFilter criterios de consulta sobre el libro de movimientos.
// Search aplica a nombre del medicamento, usuario y motivo (contains,
// sin distinción de mayúsculas). Type vacío = todos los tipos.
type TransactionFilter struct {
	Search string
	Type   string
}

// TransactionRepository puerto del libro de movimientos. Append-only:
// no existe operación de edición ni de borrado de entradas.
type TransactionRepository interface {
	// Append agrega una entrada ya formada a la cabeza de la secuencia
	// (la más reciente primero). El caller calcula QuantityChange y
	// QuantityAfter antes de llamar.
	Append(tx *entity.Transaction) error
	// Query evalúa el filtro contra el almacenamiento vivo en el momento
	// de la llamada; consultas repetidas reflejan entradas nuevas.
	Query(filter TransactionFilter) ([]entity.Transaction, error)
	// Recent devuelve las n entradas más recientes en orden de inserción.
	Recent(n int) ([]entity.Transaction, error)
}
