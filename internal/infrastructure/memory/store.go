// Package memory implementa los puertos de persistencia sobre el estado en
// memoria del proceso. El original es mono-actor (cada acción corre hasta
// completarse antes de la siguiente); al exponer el estado por HTTP hace
// falta serialización explícita: un RWMutex único protege todo el estado y
// el TxRunner retiene el lock de escritura durante toda la secuencia
// check-then-act de una mutación.
package memory

import (
	"sync"

	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
)

// Store es el estado de la aplicación: la única fuente de verdad en proceso
// para medicamentos, libro de movimientos, solicitudes y usuarios. Las
// mutaciones pasan por los contratos de los casos de uso, nunca por
// escritura directa de campos.
type Store struct {
	mu sync.RWMutex

	drugs         []entity.Drug
	transactions  []entity.Transaction // orden de inserción, la más reciente primero
	disbursements []entity.DisbursementRecord
	users         []entity.User
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{}
}

// SeedDrugs carga la colección inicial de medicamentos (arranque).
func (s *Store) SeedDrugs(drugs []entity.Drug) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drugs = append([]entity.Drug(nil), drugs...)
}

// SeedUsers carga los usuarios iniciales (arranque).
func (s *Store) SeedUsers(users []entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]entity.User(nil), users...)
}

// SeedTransactions carga entradas iniciales del libro de movimientos.
func (s *Store) SeedTransactions(txs []entity.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append([]entity.Transaction(nil), txs...)
}

// snapshot clona el estado mutable para poder restaurarlo si una
// transacción falla a mitad de camino. El caller debe tener el lock.
func (s *Store) snapshot() storeSnapshot {
	return storeSnapshot{
		drugs:         append([]entity.Drug(nil), s.drugs...),
		transactions:  append([]entity.Transaction(nil), s.transactions...),
		disbursements: append([]entity.DisbursementRecord(nil), s.disbursements...),
	}
}

// restore repone un snapshot previo. El caller debe tener el lock.
func (s *Store) restore(snap storeSnapshot) {
	s.drugs = snap.drugs
	s.transactions = snap.transactions
	s.disbursements = snap.disbursements
}

type storeSnapshot struct {
	drugs         []entity.Drug
	transactions  []entity.Transaction
	disbursements []entity.DisbursementRecord
}
