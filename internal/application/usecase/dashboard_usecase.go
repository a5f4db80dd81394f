package usecase

import (
	"time"

	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
	"github.com/tu-usuario/farmacia-stock/internal/domain/stock"
)

// recentTransactionsForDashboard cuántos movimientos muestra la vista principal.
const recentTransactionsForDashboard = 10

// DashboardUseCase arma el resumen de la vista principal: conteos por estado
// de stock, solicitudes pendientes y movimientos recientes. Todo es estado
// derivado recalculado sobre el snapshot actual.
type DashboardUseCase struct {
	drugRepo repository.DrugRepository
	txRepo   repository.TransactionRepository
	disbRepo repository.DisbursementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(drugRepo repository.DrugRepository, txRepo repository.TransactionRepository, disbRepo repository.DisbursementRepository) *DashboardUseCase {
	return &DashboardUseCase{drugRepo: drugRepo, txRepo: txRepo, disbRepo: disbRepo}
}

// Summary calcula el resumen con la fecha actual.
func (uc *DashboardUseCase) Summary() (*dto.DashboardSummary, error) {
	drugs, err := uc.drugRepo.List()
	if err != nil {
		return nil, err
	}
	pending, err := uc.disbRepo.ListByStatus(entity.DisbursementStatusPending)
	if err != nil {
		return nil, err
	}
	recent, err := uc.txRepo.Recent(recentTransactionsForDashboard)
	if err != nil {
		return nil, err
	}

	counts := stock.Summarize(drugs, time.Now())
	return &dto.DashboardSummary{
		TotalDrugs:         counts.Total,
		InStock:            counts.InStock,
		LowStock:           counts.LowStock,
		OutOfStock:         counts.OutOfStock,
		ExpiringSoon:       counts.ExpiringSoon,
		Expired:            counts.Expired,
		PendingRequests:    len(pending),
		RecentTransactions: dto.ToTransactionResponses(recent),
	}, nil
}
