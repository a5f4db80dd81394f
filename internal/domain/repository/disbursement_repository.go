package repository

import "github.com/tu-usuario/farmacia-stock/internal/domain/entity"

// DisbursementRepository puerto de las solicitudes de dispensación.
type DisbursementRepository interface {
	GetByID(id string) (*entity.DisbursementRecord, error)
	List() ([]entity.DisbursementRecord, error)
	ListByStatus(status string) ([]entity.DisbursementRecord, error)
	Create(record *entity.DisbursementRecord) error
	Update(record *entity.DisbursementRecord) error
}
