package repository

import (
	"context"

	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
)

// DrugSnapshotStore puerto del colaborador de persistencia externa.
// Expone exactamente dos operaciones sobre una única colección nombrada:
// lectura completa y reemplazo completo. No se asume ninguna primitiva de
// actualización parcial o incremental.
type DrugSnapshotStore interface {
	// ReadAll devuelve la colección almacenada. found=false indica que la
	// colección no existe o está vacía (primer arranque): el caller decide
	// sembrarla una única vez con datos por defecto.
	ReadAll(ctx context.Context) (drugs []entity.Drug, found bool, err error)
	// WriteAll reemplaza la colección completa.
	WriteAll(ctx context.Context, drugs []entity.Drug) error
}
