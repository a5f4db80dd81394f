package disbursement

import (
	"context"

	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

// TxRunner ejecuta la aprobación como unidad atómica: decremento de stock,
// entrada del libro y transición de estado confirman o fallan juntos.
type TxRunner interface {
	RunDisbursement(ctx context.Context, fn func(
		drugRepo repository.DrugRepository,
		txRepo repository.TransactionRepository,
		disbRepo repository.DisbursementRepository,
	) error) error
}
