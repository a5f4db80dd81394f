package dto

import (
	"time"

	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
)

// TransactionResponse entrada del libro de movimientos para la vista de auditoría.
type TransactionResponse struct {
	ID             string `json:"id"`
	DrugID         string `json:"drug_id"`
	DrugName       string `json:"drug_name"`
	Type           string `json:"type"`
	QuantityChange int    `json:"quantity_change"`
	QuantityAfter  int    `json:"quantity_after"`
	Reason         string `json:"reason,omitempty"`
	Timestamp      string `json:"timestamp"`
	User           string `json:"user"`
}

// ToTransactionResponse convierte la entidad.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             tx.ID,
		DrugID:         tx.DrugID,
		DrugName:       tx.DrugName,
		Type:           tx.Type,
		QuantityChange: tx.QuantityChange,
		QuantityAfter:  tx.QuantityAfter,
		Reason:         tx.Reason,
		Timestamp:      tx.Timestamp.Format(time.RFC3339),
		User:           tx.User,
	}
}

// ToTransactionResponses convierte la lista completa.
func ToTransactionResponses(txs []entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, ToTransactionResponse(&txs[i]))
	}
	return out
}
