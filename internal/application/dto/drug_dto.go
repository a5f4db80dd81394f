package dto

import (
	"time"

	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/domain/stock"
)

// CreateDrugRequest alta individual de un medicamento.
type CreateDrugRequest struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Unit       string `json:"unit"`
	ExpiryDate string `json:"expiry_date"` // YYYY-MM-DD
	Location   string `json:"location"`
	Notes      string `json:"notes"`
	Image      string `json:"image"`
}

// UpdateDrugRequest reemplazo completo de la ficha de un medicamento.
// Si Quantity difiere de la almacenada se registra un ajuste en el libro.
type UpdateDrugRequest struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Unit       string `json:"unit"`
	ExpiryDate string `json:"expiry_date"`
	Location   string `json:"location"`
	Notes      string `json:"notes"`
	Image      string `json:"image"`
}

// AdjustStockRequest corrección manual de cantidad con motivo obligatorio.
type AdjustStockRequest struct {
	Change int    `json:"change"` // delta con signo
	Reason string `json:"reason"`
}

// DrugResponse representación de salida de un medicamento, con el estado
// de stock derivado calculado al momento de la respuesta.
type DrugResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Unit       string `json:"unit"`
	ExpiryDate string `json:"expiry_date"`
	Location   string `json:"location"`
	Notes      string `json:"notes,omitempty"`
	Image      string `json:"image,omitempty"`
	Status     string `json:"status"`
}

// ToDrugResponse convierte la entidad calculando el estado derivado.
func ToDrugResponse(d *entity.Drug, today time.Time) DrugResponse {
	return DrugResponse{
		ID:         d.ID,
		Name:       d.Name,
		Quantity:   d.Quantity,
		Unit:       d.Unit,
		ExpiryDate: d.ExpiryDate.Format(DateLayout),
		Location:   d.Location,
		Notes:      d.Notes,
		Image:      d.Image,
		Status:     string(stock.EvaluateDrug(d, today)),
	}
}

// ToDrugResponses convierte la lista completa.
func ToDrugResponses(drugs []entity.Drug, today time.Time) []DrugResponse {
	out := make([]DrugResponse, 0, len(drugs))
	for i := range drugs {
		out = append(out, ToDrugResponse(&drugs[i], today))
	}
	return out
}
