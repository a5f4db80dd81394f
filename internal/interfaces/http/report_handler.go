package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/application/report"
	"github.com/tu-usuario/farmacia-stock/internal/domain"
)

// ReportHandler reporte mensual de dispensaciones aprobadas (solo admin).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Monthly godoc
// @Summary      Filas del reporte mensual
// @Description  Dispensaciones aprobadas del mes (YYYY-MM), en orden cronológico.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  true  "mes, formato YYYY-MM"
// @Success      200  {array}   dto.DisbursementReportRow
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/disbursements [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	rows, err := h.uc.MonthlyDisbursements(GetActor(c), c.Query("month"))
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(rows)
}

// Export godoc
// @Summary      Exportar el reporte mensual
// @Description  Genera el archivo descargable del mes. format: xlsx (por
//               defecto) o pdf. Mes sin dispensaciones aprobadas → 404.
// @Tags         reports
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        month   query  string  true   "mes, formato YYYY-MM"
// @Param        format  query  string  false  "xlsx | pdf"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/disbursements/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.uc.Export(GetActor(c), c.Query("month"), c.Query("format"))
	if err != nil {
		return reportError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(data)
}

// reportError mapea los errores del reporte a HTTP.
func reportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mes inválido; usar formato YYYY-MM"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol admin"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin dispensaciones aprobadas en el mes"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
