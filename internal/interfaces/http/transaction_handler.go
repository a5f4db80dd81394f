package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/application/ledger"
	"github.com/tu-usuario/farmacia-stock/internal/domain"
)

// TransactionHandler consultas del libro de movimientos.
type TransactionHandler struct {
	uc *ledger.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *ledger.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// List godoc
// @Summary      Consultar el libro de movimientos
// @Description  Entradas de la más reciente a la más antigua. search filtra
//               por medicamento, usuario o motivo; type por tipo de movimiento
//               (INITIAL, STOCK_IN, DISBURSEMENT, ADJUSTMENT).
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "texto libre"
// @Param        type    query  string  false  "tipo de movimiento"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	txs, err := h.uc.Query(c.Query("search"), c.Query("type"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de movimiento desconocido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToTransactionResponses(txs))
}
