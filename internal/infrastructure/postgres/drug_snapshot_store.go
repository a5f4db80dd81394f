package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

const drugsCollectionKey = "drugs"

// DrugSnapshotStore guarda la colección completa de medicamentos como una
// única fila JSONB, al estilo de un almacén clave-valor: leer todo, escribir
// todo. No hay actualización parcial.
type DrugSnapshotStore struct {
	pool *pgxpool.Pool
}

var _ repository.DrugSnapshotStore = (*DrugSnapshotStore)(nil)

// NewDrugSnapshotStore crea el almacén y asegura la tabla.
func NewDrugSnapshotStore(ctx context.Context, pool *pgxpool.Pool) (*DrugSnapshotStore, error) {
	const ddl = `
		CREATE TABLE IF NOT EXISTS kv_collections (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("crear tabla kv_collections: %w", err)
	}
	return &DrugSnapshotStore{pool: pool}, nil
}

// drugDocument forma persistida de un medicamento. Las fechas se guardan
// como "YYYY-MM-DD" (la caducidad tiene granularidad de día).
type drugDocument struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Unit       string `json:"unit"`
	ExpiryDate string `json:"expiryDate"`
	Location   string `json:"location"`
	Notes      string `json:"notes,omitempty"`
	Image      string `json:"image,omitempty"`
}

// ReadAll devuelve la colección almacenada. found=false si la fila no existe
// o si la colección guardada está vacía (primer arranque).
func (s *DrugSnapshotStore) ReadAll(ctx context.Context) ([]entity.Drug, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM kv_collections WHERE key = $1`, drugsCollectionKey,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("leer colección %q: %w", drugsCollectionKey, err)
	}

	var docs []drugDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, false, fmt.Errorf("decodificar colección %q: %w", drugsCollectionKey, err)
	}
	if len(docs) == 0 {
		return nil, false, nil
	}

	drugs := make([]entity.Drug, 0, len(docs))
	for _, doc := range docs {
		expiry, err := time.Parse("2006-01-02", doc.ExpiryDate)
		if err != nil {
			return nil, false, fmt.Errorf("fecha de caducidad inválida para %q: %w", doc.ID, err)
		}
		drugs = append(drugs, entity.Drug{
			ID:         doc.ID,
			Name:       doc.Name,
			Quantity:   doc.Quantity,
			Unit:       doc.Unit,
			ExpiryDate: expiry,
			Location:   doc.Location,
			Notes:      doc.Notes,
			Image:      doc.Image,
		})
	}
	return drugs, true, nil
}

// WriteAll reemplaza la colección completa (upsert de la única fila).
func (s *DrugSnapshotStore) WriteAll(ctx context.Context, drugs []entity.Drug) error {
	docs := make([]drugDocument, 0, len(drugs))
	for _, d := range drugs {
		docs = append(docs, drugDocument{
			ID:         d.ID,
			Name:       d.Name,
			Quantity:   d.Quantity,
			Unit:       d.Unit,
			ExpiryDate: d.ExpiryDate.Format("2006-01-02"),
			Location:   d.Location,
			Notes:      d.Notes,
			Image:      d.Image,
		})
	}

	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("codificar colección %q: %w", drugsCollectionKey, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO kv_collections (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		drugsCollectionKey, raw,
	)
	if err != nil {
		return fmt.Errorf("escribir colección %q: %w", drugsCollectionKey, err)
	}
	return nil
}
