package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/application/usecase"
	"github.com/tu-usuario/farmacia-stock/internal/domain"
)

// AIHandler asistente de inventario asistido por IA.
// Los fallos del proveedor no salen como error HTTP: el caso de uso degrada
// a un mensaje explicativo dentro de la respuesta normal.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// AnalyzeStock godoc
// @Summary      Análisis IA del inventario
// @Description  Genera un resumen en markdown de la situación del stock:
//               faltantes, próximos a vencer, vencidos y recomendaciones.
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AIResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/ai/analyze [post]
func (h *AIHandler) AnalyzeStock(c *fiber.Ctx) error {
	answer, err := h.uc.AnalyzeStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.AIResponse{Answer: answer})
}

// Chat godoc
// @Summary      Preguntar al asistente de inventario
// @Description  Responde usando exclusivamente el inventario actual y los
//               últimos 50 movimientos como contexto.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AIChatRequest  true  "question"
// @Success      200   {object}  dto.AIResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var in dto.AIChatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	answer, err := h.uc.Chat(c.Context(), in.Question)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la pregunta es obligatoria"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.AIResponse{Answer: answer})
}
