package memory

import (
	"github.com/tu-usuario/farmacia-stock/internal/domain"
	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

var _ repository.DisbursementRepository = (*DisbursementRepo)(nil)

// DisbursementRepo implementación del puerto DisbursementRepository.
type DisbursementRepo struct {
	s      *Store
	locked bool
}

// NewDisbursementRepository construye el repo standalone.
func NewDisbursementRepository(s *Store) *DisbursementRepo {
	return &DisbursementRepo{s: s}
}

// GetByID devuelve una copia de la solicitud o nil si no existe.
func (r *DisbursementRepo) GetByID(id string) (*entity.DisbursementRecord, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	for i := range r.s.disbursements {
		if r.s.disbursements[i].ID == id {
			rec := r.s.disbursements[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// List devuelve copias de todas las solicitudes en orden de creación.
func (r *DisbursementRepo) List() ([]entity.DisbursementRecord, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	return append([]entity.DisbursementRecord(nil), r.s.disbursements...), nil
}

// ListByStatus filtra por estado.
func (r *DisbursementRepo) ListByStatus(status string) ([]entity.DisbursementRecord, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	var out []entity.DisbursementRecord
	for _, rec := range r.s.disbursements {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Create agrega una solicitud nueva.
func (r *DisbursementRepo) Create(record *entity.DisbursementRecord) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for i := range r.s.disbursements {
		if r.s.disbursements[i].ID == record.ID {
			return domain.ErrDuplicate
		}
	}
	r.s.disbursements = append(r.s.disbursements, *record)
	return nil
}

// Update reemplaza la solicitud almacenada.
func (r *DisbursementRepo) Update(record *entity.DisbursementRecord) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for i := range r.s.disbursements {
		if r.s.disbursements[i].ID == record.ID {
			r.s.disbursements[i] = *record
			return nil
		}
	}
	return domain.ErrNotFound
}
