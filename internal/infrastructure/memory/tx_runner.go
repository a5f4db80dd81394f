package memory

import (
	"context"

	"github.com/tu-usuario/farmacia-stock/internal/application/disbursement"
	"github.com/tu-usuario/farmacia-stock/internal/application/inventory"
	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and disbursement.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ disbursement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks como una unidad atómica sobre el Store: retiene
// el lock de escritura durante toda la secuencia check-then-act y, si el
// callback falla, restaura el snapshot previo (equivalente en memoria al
// Commit/Rollback de una transacción de BD).
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el estado.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos atados al lock ya tomado; restaura el estado si fn falla.
func (r *TxRunner) Run(_ context.Context, fn func(
	drugRepo repository.DrugRepository,
	txRepo repository.TransactionRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	drugRepo := &DrugRepo{s: r.s, locked: true}
	txRepo := &TransactionRepo{s: r.s, locked: true}

	if err := fn(drugRepo, txRepo); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// RunDisbursement ejecuta fn con los repos de inventario y solicitudes
// (aprobación de dispensación: decremento de stock + entrada del libro +
// transición de estado en una sola unidad).
func (r *TxRunner) RunDisbursement(_ context.Context, fn func(
	drugRepo repository.DrugRepository,
	txRepo repository.TransactionRepository,
	disbRepo repository.DisbursementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	drugRepo := &DrugRepo{s: r.s, locked: true}
	txRepo := &TransactionRepo{s: r.s, locked: true}
	disbRepo := &DisbursementRepo{s: r.s, locked: true}

	if err := fn(drugRepo, txRepo, disbRepo); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
