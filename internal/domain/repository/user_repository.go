package repository

import "github.com/tu-usuario/farmacia-stock/internal/domain/entity"

// UserRepository puerto de usuarios.
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	List() ([]entity.User, error)
	Create(user *entity.User) error
	Update(user *entity.User) error
	Delete(id string) error
}
