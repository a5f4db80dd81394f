package inventory

import (
	"context"

	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

// TxRunner ejecuta una función como unidad atómica sobre el estado, pasando
// repositorios atados a esa unidad. Garantiza que la secuencia leer-validar-
// escribir de una mutación de inventario no se intercala con otra.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		drugRepo repository.DrugRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
