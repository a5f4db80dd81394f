package disbursement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/domain"
	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

// UseCase máquina de estados de las solicitudes de dispensación.
// Pending (inicial) → Approved | Rejected (terminales), exactamente una
// transición. Los fallos se reportan como resultados tipados; cada acción
// es un único intento iniciado por el usuario, sin reintentos automáticos.
type UseCase struct {
	txRunner TxRunner
	drugRepo repository.DrugRepository
	disbRepo repository.DisbursementRepository
	snapshot repository.DrugSnapshotStore
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, drugRepo repository.DrugRepository, disbRepo repository.DisbursementRepository, snapshot repository.DrugSnapshotStore) *UseCase {
	return &UseCase{txRunner: txRunner, drugRepo: drugRepo, disbRepo: disbRepo, snapshot: snapshot}
}

// List devuelve todas las solicitudes.
func (uc *UseCase) List() ([]entity.DisbursementRecord, error) {
	return uc.disbRepo.List()
}

// Pending devuelve las solicitudes sin resolver (insignia de notificaciones).
func (uc *UseCase) Pending() ([]entity.DisbursementRecord, error) {
	return uc.disbRepo.ListByStatus(entity.DisbursementStatusPending)
}

// Create registra una solicitud Pending de cualquier usuario autenticado.
// Falla con ErrInvalidInput si la cantidad no es positiva o excede el stock
// actual, y con ErrNotFound si el medicamento no existe.
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateDisbursementRequest) (*entity.DisbursementRecord, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var record *entity.DisbursementRecord
	err := uc.txRunner.RunDisbursement(ctx, func(
		drugRepo repository.DrugRepository,
		_ repository.TransactionRepository,
		disbRepo repository.DisbursementRepository,
	) error {
		drug, err := drugRepo.GetByID(in.DrugID)
		if err != nil {
			return err
		}
		if drug == nil {
			return domain.ErrNotFound
		}
		// La igualdad en el límite está permitida: pedir todo el stock es válido.
		if in.Quantity > drug.Quantity {
			return domain.ErrInvalidInput
		}
		record = &entity.DisbursementRecord{
			ID:                uuid.New().String(),
			DrugID:            drug.ID,
			DrugName:          drug.Name,
			QuantityDisbursed: in.Quantity,
			Unit:              drug.Unit,
			RequestDate:       time.Now(),
			RequestedBy:       actor.Username,
			Status:            entity.DisbursementStatusPending,
		}
		return disbRepo.Create(record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Approve resuelve una solicitud Pending decrementando el stock y
// registrando la transacción Disbursement, todo como una unidad: si la
// cantidad resultante fuera negativa, la aprobación se aborta, la solicitud
// permanece Pending con los campos de aprobador limpios y el libro queda
// intacto (check-then-commit, sin estado transitorio observable).
func (uc *UseCase) Approve(ctx context.Context, actor entity.Actor, recordID string) (*entity.DisbursementRecord, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	var approved *entity.DisbursementRecord
	err := uc.txRunner.RunDisbursement(ctx, func(
		drugRepo repository.DrugRepository,
		txRepo repository.TransactionRepository,
		disbRepo repository.DisbursementRepository,
	) error {
		record, err := disbRepo.GetByID(recordID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		if record.Status != entity.DisbursementStatusPending {
			return domain.ErrConflict
		}
		drug, err := drugRepo.GetByID(record.DrugID)
		if err != nil {
			return err
		}
		if drug == nil {
			return domain.ErrNotFound
		}
		newQuantity := drug.Quantity - record.QuantityDisbursed
		if newQuantity < 0 {
			return domain.ErrInsufficientStock
		}

		drug.Quantity = newQuantity
		if err := drugRepo.Update(drug); err != nil {
			return err
		}
		if err := txRepo.Append(&entity.Transaction{
			ID:             uuid.New().String(),
			DrugID:         record.DrugID,
			DrugName:       record.DrugName,
			Type:           entity.TransactionTypeDisbursement,
			QuantityChange: -record.QuantityDisbursed,
			QuantityAfter:  newQuantity,
			Reason:         fmt.Sprintf("aprobación solicitud #%s", shortID(record.ID)),
			Timestamp:      now,
			User:           actor.Username,
		}); err != nil {
			return err
		}

		record.Status = entity.DisbursementStatusApproved
		record.ApprovalDate = &now
		record.ApprovedBy = actor.Username
		if err := disbRepo.Update(record); err != nil {
			return err
		}
		approved = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := uc.persistSnapshot(ctx); err != nil {
		return nil, err
	}
	return approved, nil
}

// Reject resuelve una solicitud Pending sin efectos sobre inventario ni libro.
func (uc *UseCase) Reject(ctx context.Context, actor entity.Actor, recordID string) (*entity.DisbursementRecord, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	record, err := uc.disbRepo.GetByID(recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if record.Status != entity.DisbursementStatusPending {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	record.Status = entity.DisbursementStatusRejected
	record.ApprovalDate = &now
	record.ApprovedBy = actor.Username
	if err := uc.disbRepo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

// EditDates corrección administrativa retroactiva de fechas, permitida en
// cualquier estado. La fecha de resolución solo tiene sentido (y es
// obligatoria) cuando la solicitud ya no está Pending. Nunca vuelve a
// disparar la mutación de inventario.
func (uc *UseCase) EditDates(_ context.Context, actor entity.Actor, recordID string, in dto.EditDisbursementDatesRequest) (*entity.DisbursementRecord, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	record, err := uc.disbRepo.GetByID(recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}

	requestDate, err := time.Parse(time.RFC3339, strings.TrimSpace(in.RequestDate))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	record.RequestDate = requestDate

	if record.Terminal() {
		if strings.TrimSpace(in.ApprovalDate) == "" {
			return nil, domain.ErrInvalidInput
		}
		approvalDate, err := time.Parse(time.RFC3339, strings.TrimSpace(in.ApprovalDate))
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		record.ApprovalDate = &approvalDate
	}

	if err := uc.disbRepo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

// persistSnapshot escribe la colección de medicamentos tras una aprobación
// (única acción de este caso de uso que altera cantidades).
func (uc *UseCase) persistSnapshot(ctx context.Context) error {
	drugs, err := uc.drugRepo.List()
	if err != nil {
		return err
	}
	if err := uc.snapshot.WriteAll(ctx, drugs); err != nil {
		log.Warn().Err(err).Msg("persistencia de la colección de medicamentos fallida")
		return fmt.Errorf("%w: %v", domain.ErrIntegration, err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 5 {
		return id[:5]
	}
	return id
}
