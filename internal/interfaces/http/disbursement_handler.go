package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-stock/internal/application/disbursement"
	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/domain"
)

// DisbursementHandler maneja las solicitudes de dispensación.
type DisbursementHandler struct {
	uc *disbursement.UseCase
}

// NewDisbursementHandler construye el handler.
func NewDisbursementHandler(uc *disbursement.UseCase) *DisbursementHandler {
	return &DisbursementHandler{uc: uc}
}

// List godoc
// @Summary      Listar solicitudes de dispensación
// @Tags         disbursements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.DisbursementResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/disbursements [get]
func (h *DisbursementHandler) List(c *fiber.Ctx) error {
	records, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToDisbursementResponses(records))
}

// Pending godoc
// @Summary      Solicitudes pendientes
// @Description  Alimenta la insignia de notificaciones del panel.
// @Tags         disbursements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.DisbursementResponse
// @Router       /api/disbursements/pending [get]
func (h *DisbursementHandler) Pending(c *fiber.Ctx) error {
	records, err := h.uc.Pending()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToDisbursementResponses(records))
}

// Create godoc
// @Summary      Solicitar una dispensación
// @Description  Cualquier usuario autenticado. La cantidad debe ser positiva
//               y no exceder el stock actual (pedir todo el stock es válido).
// @Tags         disbursements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDisbursementRequest  true  "drug_id y quantity"
// @Success      201   {object}  dto.DisbursementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/disbursements [post]
func (h *DisbursementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDisbursementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return disbursementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDisbursementResponse(record))
}

// Approve godoc
// @Summary      Aprobar una solicitud pendiente
// @Description  Decrementa el stock y registra la salida en el libro como una
//               unidad. Si el stock ya no alcanza, la solicitud permanece
//               pendiente sin efecto alguno. Solo admin.
// @Tags         disbursements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.DisbursementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/disbursements/{id}/approve [post]
func (h *DisbursementHandler) Approve(c *fiber.Ctx) error {
	record, err := h.uc.Approve(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return disbursementError(c, err)
	}
	return c.JSON(dto.ToDisbursementResponse(record))
}

// Reject godoc
// @Summary      Rechazar una solicitud pendiente
// @Description  Sin efectos sobre inventario ni libro de movimientos. Solo admin.
// @Tags         disbursements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.DisbursementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/disbursements/{id}/reject [post]
func (h *DisbursementHandler) Reject(c *fiber.Ctx) error {
	record, err := h.uc.Reject(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return disbursementError(c, err)
	}
	return c.JSON(dto.ToDisbursementResponse(record))
}

// EditDates godoc
// @Summary      Corregir fechas de una solicitud
// @Description  Corrección administrativa retroactiva; nunca vuelve a mutar
//               el inventario. Solo admin.
// @Tags         disbursements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la solicitud"
// @Param        body  body  dto.EditDisbursementDatesRequest  true  "fechas en RFC 3339"
// @Success      200   {object}  dto.DisbursementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/disbursements/{id}/dates [put]
func (h *DisbursementHandler) EditDates(c *fiber.Ctx) error {
	var in dto.EditDisbursementDatesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.uc.EditDates(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return disbursementError(c, err)
	}
	return c.JSON(dto.ToDisbursementResponse(record))
}

// disbursementError mapea los errores de dominio de dispensación a HTTP.
func disbursementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol admin"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud o medicamento no encontrado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la solicitud ya fue resuelta"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente; la solicitud permanece pendiente"})
	case errors.Is(err, domain.ErrIntegration):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "no se pudo guardar el inventario; reintenta la acción"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
