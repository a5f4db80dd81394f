package ledger

import (
	"github.com/tu-usuario/farmacia-stock/internal/domain"
	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

// UseCase consultas sobre el libro de movimientos. El libro solo crece:
// las escrituras ocurren dentro de las mutaciones de inventario y
// dispensación; aquí no hay operación de edición ni borrado.
type UseCase struct {
	txRepo repository.TransactionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRepo repository.TransactionRepository) *UseCase {
	return &UseCase{txRepo: txRepo}
}

// Query filtra el libro por texto libre (nombre del medicamento, usuario,
// motivo) y por tipo. La vista se evalúa contra el estado vivo: consultas
// repetidas reflejan las entradas agregadas entre una y otra.
func (uc *UseCase) Query(search, txType string) ([]entity.Transaction, error) {
	if txType != "" && !entity.ValidTransactionType(txType) {
		return nil, domain.ErrInvalidInput
	}
	return uc.txRepo.Query(repository.TransactionFilter{Search: search, Type: txType})
}

// Recent devuelve las n entradas más recientes (contexto del asistente de IA
// y del dashboard).
func (uc *UseCase) Recent(n int) ([]entity.Transaction, error) {
	if n <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.txRepo.Recent(n)
}
