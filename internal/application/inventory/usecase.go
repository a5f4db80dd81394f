package inventory

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

// Motivos fijos de las entradas del libro generadas por este caso de uso.
// AdjustStock es el único camino con motivo aportado por el usuario; los
// demás llevan atribución fija para que la auditoría no sea ambigua.
const (
	reasonCreate   = "alta de medicamento"
	reasonEdit     = "edición de ficha"
	reasonDelete   = "baja de medicamento"
	reasonBulkLoad = "importación desde archivo"
)

// UseCase mutaciones del inventario de medicamentos. Toda operación que
// afecta cantidades corre dentro del TxRunner y produce exactamente una
// entrada en el libro de movimientos; tras confirmar, la colección completa
// se escribe en el colaborador de persistencia (write-all, sin reintentos).
type UseCase struct {
	txRunner TxRunner
	drugRepo repository.DrugRepository
	snapshot repository.DrugSnapshotStore
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, drugRepo repository.DrugRepository, snapshot repository.DrugSnapshotStore) *UseCase {
	return &UseCase{txRunner: txRunner, drugRepo: drugRepo, snapshot: snapshot}
}

// List devuelve la colección activa.
func (uc *UseCase) List() ([]entity.Drug, error) {
	return uc.drugRepo.List()
}

// Get devuelve un medicamento por ID.
func (uc *UseCase) Get(id string) (*entity.Drug, error) {
	drug, err := uc.drugRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if drug == nil {
		return nil, domain.ErrNotFound
	}
	return drug, nil
}

// AddDrug da de alta un medicamento y registra la transacción Initial
// (QuantityChange = QuantityAfter = cantidad inicial). Solo admin.
func (uc *UseCase) AddDrug(ctx context.Context, actor entity.Actor, in dto.CreateDrugRequest) (*entity.Drug, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	expiry, err := validateDrugFields(in.Name, in.Unit, in.ExpiryDate, in.Location, in.Quantity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	drug := &entity.Drug{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(in.Name),
		Quantity:   in.Quantity,
		Unit:       strings.TrimSpace(in.Unit),
		ExpiryDate: expiry,
		Location:   strings.TrimSpace(in.Location),
		Notes:      strings.TrimSpace(in.Notes),
		Image:      in.Image,
	}

	err = uc.txRunner.Run(ctx, func(drugRepo repository.DrugRepository, txRepo repository.TransactionRepository) error {
		if err := drugRepo.Create(drug); err != nil {
			return err
		}
		return txRepo.Append(&entity.Transaction{
			ID:             uuid.New().String(),
			DrugID:         drug.ID,
			DrugName:       drug.Name,
			Type:           entity.TransactionTypeInitial,
			QuantityChange: drug.Quantity,
			QuantityAfter:  drug.Quantity,
			Reason:         reasonCreate,
			Timestamp:      now,
			User:           actor.Username,
		})
	})
	if err != nil {
		return nil, err
	}
	if err := uc.persistSnapshot(ctx); err != nil {
		return nil, err
	}
	return drug, nil
}

// UpdateDrug reemplaza la ficha almacenada. Si la cantidad difiere de la
// previa, registra una transacción Adjustment con el delta y motivo fijo
// (camino correctivo distinto de AdjustStock, que exige motivo del usuario).
func (uc *UseCase) UpdateDrug(ctx context.Context, actor entity.Actor, id string, in dto.UpdateDrugRequest) (*entity.Drug, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	expiry, err := validateDrugFields(in.Name, in.Unit, in.ExpiryDate, in.Location, in.Quantity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updated := &entity.Drug{
		ID:         id,
		Name:       strings.TrimSpace(in.Name),
		Quantity:   in.Quantity,
		Unit:       strings.TrimSpace(in.Unit),
		ExpiryDate: expiry,
		Location:   strings.TrimSpace(in.Location),
		Notes:      strings.TrimSpace(in.Notes),
		Image:      in.Image,
	}

	err = uc.txRunner.Run(ctx, func(drugRepo repository.DrugRepository, txRepo repository.TransactionRepository) error {
		prior, err := drugRepo.GetByID(id)
		if err != nil {
			return err
		}
		if prior == nil {
			return domain.ErrNotFound
		}
		if err := drugRepo.Update(updated); err != nil {
			return err
		}
		if prior.Quantity == updated.Quantity {
			return nil
		}
		return txRepo.Append(&entity.Transaction{
			ID:             uuid.New().String(),
			DrugID:         updated.ID,
			DrugName:       updated.Name,
			Type:           entity.TransactionTypeAdjustment,
			QuantityChange: updated.Quantity - prior.Quantity,
			QuantityAfter:  updated.Quantity,
			Reason:         reasonEdit,
			Timestamp:      now,
			User:           actor.Username,
		})
	})
	if err != nil {
		return nil, err
	}
	if err := uc.persistSnapshot(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// AdjustStock aplica un delta con signo a la cantidad. El motivo es
// obligatorio; si la cantidad resultante fuera negativa, la operación falla
// sin efecto alguno.
func (uc *UseCase) AdjustStock(ctx context.Context, actor entity.Actor, drugID string, change int, reason string) (*entity.Drug, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	reason = strings.TrimSpace(reason)
	if reason == "" || change == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var adjusted *entity.Drug
	err := uc.txRunner.Run(ctx, func(drugRepo repository.DrugRepository, txRepo repository.TransactionRepository) error {
		drug, err := drugRepo.GetByID(drugID)
		if err != nil {
			return err
		}
		if drug == nil {
			return domain.ErrNotFound
		}
		newQuantity := drug.Quantity + change
		if newQuantity < 0 {
			return domain.ErrInvalidInput
		}
		drug.Quantity = newQuantity
		if err := drugRepo.Update(drug); err != nil {
			return err
		}
		adjusted = drug
		return txRepo.Append(&entity.Transaction{
			ID:             uuid.New().String(),
			DrugID:         drug.ID,
			DrugName:       drug.Name,
			Type:           entity.TransactionTypeAdjustment,
			QuantityChange: change,
			QuantityAfter:  newQuantity,
			Reason:         reason,
			Timestamp:      now,
			User:           actor.Username,
		})
	})
	if err != nil {
		return nil, err
	}
	if err := uc.persistSnapshot(ctx); err != nil {
		return nil, err
	}
	return adjusted, nil
}

// DeleteDrug retira el medicamento de la colección activa y registra la
// transacción Adjustment de cierre que lleva la cantidad a cero. El
// historial que referencia el ID eliminado se conserva.
func (uc *UseCase) DeleteDrug(ctx context.Context, actor entity.Actor, drugID string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	now := time.Now()
	err := uc.txRunner.Run(ctx, func(drugRepo repository.DrugRepository, txRepo repository.TransactionRepository) error {
		drug, err := drugRepo.GetByID(drugID)
		if err != nil {
			return err
		}
		if drug == nil {
			return domain.ErrNotFound
		}
		if err := drugRepo.Delete(drugID); err != nil {
			return err
		}
		return txRepo.Append(&entity.Transaction{
			ID:             uuid.New().String(),
			DrugID:         drug.ID,
			DrugName:       drug.Name,
			Type:           entity.TransactionTypeAdjustment,
			QuantityChange: -drug.Quantity,
			QuantityAfter:  0,
			Reason:         reasonDelete,
			Timestamp:      now,
			User:           actor.Username,
		})
	})
	if err != nil {
		return err
	}
	return uc.persistSnapshot(ctx)
}

// BulkImport da de alta cada fila validada como AddDrug, pero con
// transacciones StockIn, una sola atribución de usuario y un único
// timestamp de importación para todo el lote.
func (uc *UseCase) BulkImport(ctx context.Context, actor entity.Actor, rows []dto.ImportDrugRow) ([]entity.Drug, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}

	importedAt := time.Now()
	drugs := make([]entity.Drug, 0, len(rows))
	for _, row := range rows {
		expiry, err := validateDrugFields(row.Name, row.Unit, row.ExpiryDate, row.Location, row.Quantity)
		if err != nil {
			return nil, err
		}
		drugs = append(drugs, entity.Drug{
			ID:         uuid.New().String(),
			Name:       strings.TrimSpace(row.Name),
			Quantity:   row.Quantity,
			Unit:       strings.TrimSpace(row.Unit),
			ExpiryDate: expiry,
			Location:   strings.TrimSpace(row.Location),
			Notes:      strings.TrimSpace(row.Notes),
		})
	}

	err := uc.txRunner.Run(ctx, func(drugRepo repository.DrugRepository, txRepo repository.TransactionRepository) error {
		for i := range drugs {
			if err := drugRepo.Create(&drugs[i]); err != nil {
				return err
			}
			if err := txRepo.Append(&entity.Transaction{
				ID:             uuid.New().String(),
				DrugID:         drugs[i].ID,
				DrugName:       drugs[i].Name,
				Type:           entity.TransactionTypeStockIn,
				QuantityChange: drugs[i].Quantity,
				QuantityAfter:  drugs[i].Quantity,
				Reason:         reasonBulkLoad,
				Timestamp:      importedAt,
				User:           actor.Username,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := uc.persistSnapshot(ctx); err != nil {
		return nil, err
	}
	return drugs, nil
}

// persistSnapshot escribe la colección completa en el colaborador externo.
// Un fallo se reporta como error de integración al usuario (que debe
// reintentar la acción); el estado en memoria conserva la mutación.
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

// validateDrugFields valida los campos obligatorios y parsea el vencimiento.
func validateDrugFields(name, unit, expiryDate, location string, quantity int) (time.Time, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(unit) == "" || strings.TrimSpace(location) == "" {
		return time.Time{}, domain.ErrInvalidInput
	}
	if quantity < 0 {
		return time.Time{}, domain.ErrInvalidInput
	}
	expiry, err := time.Parse(dto.DateLayout, strings.TrimSpace(expiryDate))
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return expiry, nil
}
