package entity

import "time"

// Estados de una solicitud de dispensación.
// Pending es el único estado no terminal: una solicitud transiciona
// exactamente una vez a Approved o Rejected.
const (
	DisbursementStatusPending  = "PENDING"
	DisbursementStatusApproved = "APPROVED"
	DisbursementStatusRejected = "REJECTED"
)

// DisbursementRecord representa una solicitud de retiro de stock.
// DrugName y Unit se desnormalizan al crear la solicitud; la referencia
// por DrugID es débil (eliminar el medicamento no borra el historial).
type DisbursementRecord struct {
	ID                string
	DrugID            string
	DrugName          string
	QuantityDisbursed int // siempre positivo
	Unit              string
	RequestDate       time.Time
	RequestedBy       string // username del solicitante
	Status            string
	ApprovalDate      *time.Time // nil mientras está Pending
	ApprovedBy        string     // username del admin que resolvió
}

// Terminal indica si la solicitud ya fue resuelta (aprobada o rechazada).
func (r *DisbursementRecord) Terminal() bool {
	return r.Status == DisbursementStatusApproved || r.Status == DisbursementStatusRejected
}
