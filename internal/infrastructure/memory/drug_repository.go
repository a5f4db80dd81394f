package memory

import (
	"github.com/tu-usuario/farmacia-stock/internal/domain"
	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

var _ repository.DrugRepository = (*DrugRepo)(nil)

// DrugRepo implementación del puerto DrugRepository sobre el Store en memoria.
// Con locked=true las operaciones asumen que el TxRunner ya retiene el lock
// de escritura (equivalente a un repo atado a una transacción en el pool).
type DrugRepo struct {
	s      *Store
	locked bool
}

// NewDrugRepository construye el repo standalone (toma el lock por operación).
func NewDrugRepository(s *Store) *DrugRepo {
	return &DrugRepo{s: s}
}

// GetByID devuelve una copia del medicamento o nil si no existe.
func (r *DrugRepo) GetByID(id string) (*entity.Drug, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	for i := range r.s.drugs {
		if r.s.drugs[i].ID == id {
			d := r.s.drugs[i]
			return &d, nil
		}
	}
	return nil, nil
}

// List devuelve una copia de la colección activa en su orden actual.
func (r *DrugRepo) List() ([]entity.Drug, error) {
	if !r.locked {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	return append([]entity.Drug(nil), r.s.drugs...), nil
}

// Create agrega un medicamento al final de la colección.
func (r *DrugRepo) Create(drug *entity.Drug) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for i := range r.s.drugs {
		if r.s.drugs[i].ID == drug.ID {
			return domain.ErrDuplicate
		}
	}
	r.s.drugs = append(r.s.drugs, *drug)
	return nil
}

// Update reemplaza el registro almacenado.
func (r *DrugRepo) Update(drug *entity.Drug) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for i := range r.s.drugs {
		if r.s.drugs[i].ID == drug.ID {
			r.s.drugs[i] = *drug
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete retira el medicamento de la colección activa. El historial que lo
// referencia se conserva (referencia débil rota, no es un error).
func (r *DrugRepo) Delete(id string) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for i := range r.s.drugs {
		if r.s.drugs[i].ID == id {
			r.s.drugs = append(r.s.drugs[:i], r.s.drugs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
