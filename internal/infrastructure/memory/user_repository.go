package memory

import (
	"strings"

	"github.com/tu-usuario/farmacia-stock/internal/domain"
	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repo.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

// GetByID devuelve una copia del usuario o nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// FindByUsername busca por username sin distinción de mayúsculas.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.users {
		if strings.EqualFold(r.s.users[i].Username, username) {
			u := r.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// List devuelve copias de todos los usuarios.
func (r *UserRepo) List() ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]entity.User(nil), r.s.users...), nil
}

// Create agrega un usuario. Devuelve ErrUsernameTaken si el username ya existe.
func (r *UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if strings.EqualFold(r.s.users[i].Username, user.Username) {
			return domain.ErrUsernameTaken
		}
	}
	r.s.users = append(r.s.users, *user)
	return nil
}

// Update reemplaza el usuario almacenado.
func (r *UserRepo) Update(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == user.ID {
			r.s.users[i] = *user
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// Delete elimina el usuario.
func (r *UserRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}
