// Package seed define los datos por defecto del primer arranque: si el
// almacén externo no tiene la colección de medicamentos, se siembra una
// única vez con este inventario de ejemplo.
package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
)

// Drugs devuelve el inventario inicial. Incluye a propósito un medicamento
// con stock bajo, uno próximo a vencer, uno agotado y uno vencido, para que
// el tablero muestre todos los estados desde el primer arranque.
func Drugs(now time.Time) []entity.Drug {
	day := func(d int) time.Time {
		return now.AddDate(0, 0, d).Truncate(24 * time.Hour)
	}
	return []entity.Drug{
		{
			ID:         "d-001",
			Name:       "Paracetamol 500mg",
			Quantity:   150,
			Unit:       "tabletas",
			ExpiryDate: day(365),
			Location:   "Estante A, Nivel 1",
			Notes:      "Analgésico de uso general",
		},
		{
			ID:         "d-002",
			Name:       "Amoxicilina 250mg",
			Quantity:   18,
			Unit:       "cápsulas",
			ExpiryDate: day(180),
			Location:   "Estante B, Nivel 2",
			Notes:      "Antibiótico, requiere receta",
		},
		{
			ID:         "d-003",
			Name:       "Ibuprofeno 400mg",
			Quantity:   90,
			Unit:       "tabletas",
			ExpiryDate: day(60),
			Location:   "Estante A, Nivel 2",
		},
		{
			ID:         "d-004",
			Name:       "Loratadina 10mg",
			Quantity:   0,
			Unit:       "tabletas",
			ExpiryDate: day(200),
			Location:   "Estante C, Nivel 1",
			Notes:      "Antihistamínico",
		},
		{
			ID:         "d-005",
			Name:       "Jarabe para la tos 120ml",
			Quantity:   25,
			Unit:       "frascos",
			ExpiryDate: day(-30),
			Location:   "Estante D, Nivel 3",
			Notes:      "Lote vencido, pendiente de retiro",
		},
		{
			ID:         "d-006",
			Name:       "Omeprazol 20mg",
			Quantity:   64,
			Unit:       "cápsulas",
			ExpiryDate: day(300),
			Location:   "Estante B, Nivel 1",
		},
	}
}

// InitialTransactions devuelve el asiento inicial del libro: una entrada
// INITIAL por cada medicamento sembrado, con la cantidad inicial como delta.
func InitialTransactions(drugs []entity.Drug, now time.Time) []entity.Transaction {
	txs := make([]entity.Transaction, 0, len(drugs))
	for _, d := range drugs {
		txs = append(txs, entity.Transaction{
			ID:             uuid.NewString(),
			DrugID:         d.ID,
			DrugName:       d.Name,
			Type:           entity.TransactionTypeInitial,
			QuantityChange: d.Quantity,
			QuantityAfter:  d.Quantity,
			Reason:         "inventario inicial",
			Timestamp:      now,
			User:           "system",
		})
	}
	return txs
}

// Users devuelve los usuarios por defecto. Las contraseñas se hashean con
// bcrypt en el arranque; nunca se guarda texto plano.
func Users() ([]entity.User, error) {
	users := []struct {
		id       string
		username string
		password string
		role     string
	}{
		{"u-001", "admin", "admin123", entity.RoleAdmin},
		{"u-002", "farmaceutico", "user123", entity.RoleUser},
	}

	result := make([]entity.User, 0, len(users))
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashear contraseña de %q: %w", u.username, err)
		}
		result = append(result, entity.User{
			ID:           u.id,
			Username:     u.username,
			PasswordHash: string(hash),
			Role:         u.role,
		})
	}
	return result, nil
}
