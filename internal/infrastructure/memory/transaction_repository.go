package memory

import (
	"strings"

	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación append-only del libro de movimientos.
type TransactionRepo struct {
	s      *Store
	locked bool
}

// NewTransactionRepository construye el repo standalone.
func NewTransactionRepository(s *Store) *TransactionRepo {
	return &TransactionRepo{s: s}
}

// Append agrega la entrada a la cabeza de la secuencia (más reciente primero).
func (r *TransactionRepo) Append(tx *entity.Transaction) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.transactions = append([]entity.Transaction{*tx}, r.s.transactions...)
	return nil
}

// Query filtra contra el almacenamiento vivo: texto libre sobre nombre del
// medicamento, usuario y motivo, más filtro por tipo. Devuelve copias en el
// orden canónico de inserción (la más reciente primero). Los consumidores
// que necesiten orden cronológico ascendente deben ordenar explícitamente.
func (r *TransactionRepo) Query(filter repository.TransactionFilter) ([]entity.Transaction, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []entity.Transaction
	for _, tx := range r.s.transactions {
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if search != "" && !matchesSearch(&tx, search) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

// Recent devuelve las n entradas más recientes.
func (r *TransactionRepo) Recent(n int) ([]entity.Transaction, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	if n > len(r.s.transactions) {
		n = len(r.s.transactions)
	}
	return append([]entity.Transaction(nil), r.s.transactions[:n]...), nil
}

func matchesSearch(tx *entity.Transaction, search string) bool {
	return strings.Contains(strings.ToLower(tx.DrugName), search) ||
		strings.Contains(strings.ToLower(tx.User), search) ||
		strings.Contains(strings.ToLower(tx.Reason), search)
}
