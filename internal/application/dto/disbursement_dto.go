package dto

import (
	"time"

	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
)

// CreateDisbursementRequest solicitud de dispensación de cualquier usuario.
type CreateDisbursementRequest struct {
	DrugID   string `json:"drug_id"`
	Quantity int    `json:"quantity"`
}

// EditDisbursementDatesRequest corrección administrativa de fechas.
// ApprovalDate solo tiene sentido (y es obligatoria) cuando la solicitud
// ya está resuelta; nunca vuelve a disparar la mutación de inventario.
type EditDisbursementDatesRequest struct {
	RequestDate  string `json:"request_date"`            // RFC 3339
	ApprovalDate string `json:"approval_date,omitempty"` // RFC 3339
}

// DisbursementResponse representación de salida de una solicitud.
type DisbursementResponse struct {
	ID                string `json:"id"`
	DrugID            string `json:"drug_id"`
	DrugName          string `json:"drug_name"`
	QuantityDisbursed int    `json:"quantity_disbursed"`
	Unit              string `json:"unit"`
	RequestDate       string `json:"request_date"`
	RequestedBy       string `json:"requested_by"`
	Status            string `json:"status"`
	ApprovalDate      string `json:"approval_date,omitempty"`
	ApprovedBy        string `json:"approved_by,omitempty"`
}

// ToDisbursementResponse convierte la entidad.
func ToDisbursementResponse(r *entity.DisbursementRecord) DisbursementResponse {
	resp := DisbursementResponse{
		ID:                r.ID,
		DrugID:            r.DrugID,
		DrugName:          r.DrugName,
		QuantityDisbursed: r.QuantityDisbursed,
		Unit:              r.Unit,
		RequestDate:       r.RequestDate.Format(time.RFC3339),
		RequestedBy:       r.RequestedBy,
		Status:            r.Status,
		ApprovedBy:        r.ApprovedBy,
	}
	if r.ApprovalDate != nil {
		resp.ApprovalDate = r.ApprovalDate.Format(time.RFC3339)
	}
	return resp
}

// ToDisbursementResponses convierte la lista completa.
func ToDisbursementResponses(records []entity.DisbursementRecord) []DisbursementResponse {
	out := make([]DisbursementResponse, 0, len(records))
	for i := range records {
		out = append(out, ToDisbursementResponse(&records[i]))
	}
	return out
}
