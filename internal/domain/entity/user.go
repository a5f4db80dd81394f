package entity

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	Role         string // admin, user
	Avatar       string // referencia opcional a la imagen de perfil
}

// Actor identifica a quien ejecuta una acción mutadora. Los casos de uso
// validan el rol en la frontera del contrato, no solo en la vista.
type Actor struct {
	ID       string
	Username string
	Role     string
}

// IsAdmin indica si el actor tiene rol de administrador.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
