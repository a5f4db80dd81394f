package repository

import "github.com/tu-usuario/farmacia-stock/internal/domain/entity"

// DrugRepository puerto de acceso a la colección activa de medicamentos.
// Las implementaciones devuelven copias: mutar el resultado no altera el estado.
type DrugRepository interface {
	GetByID(id string) (*entity.Drug, error)
	List() ([]entity.Drug, error)
	Create(drug *entity.Drug) error
	Update(drug *entity.Drug) error
	Delete(id string) error
}
