package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-stock/internal/application/dto"
	"github.com/tu-usuario/farmacia-stock/internal/application/inventory"
	"github.com/tu-usuario/farmacia-stock/internal/domain"
	"github.com/tu-usuario/farmacia-stock/internal/infrastructure/excel"
)

// DrugHandler maneja las peticiones HTTP del inventario de medicamentos.
type DrugHandler struct {
	uc       *inventory.UseCase
	importer *excel.Importer
}

// NewDrugHandler construye el handler.
func NewDrugHandler(uc *inventory.UseCase, importer *excel.Importer) *DrugHandler {
	return &DrugHandler{uc: uc, importer: importer}
}

// List godoc
// @Summary      Listar medicamentos
// @Description  Devuelve la colección activa con el estado de stock derivado.
// @Tags         drugs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.DrugResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/drugs [get]
func (h *DrugHandler) List(c *fiber.Ctx) error {
	drugs, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToDrugResponses(drugs, time.Now()))
}

// GetByID godoc
// @Summary      Obtener un medicamento
// @Tags         drugs
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del medicamento"
// @Success      200  {object}  dto.DrugResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drugs/{id} [get]
func (h *DrugHandler) GetByID(c *fiber.Ctx) error {
	drug, err := h.uc.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "medicamento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToDrugResponse(drug, time.Now()))
}

// Create godoc
// @Summary      Dar de alta un medicamento
// @Description  Registra la ficha y la transacción inicial. Solo admin.
// @Tags         drugs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDrugRequest  true  "ficha del medicamento"
// @Success      201   {object}  dto.DrugResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/drugs [post]
func (h *DrugHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDrugRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	drug, err := h.uc.AddDrug(c.Context(), GetActor(c), in)
	if err != nil {
		return drugError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDrugResponse(drug, time.Now()))
}

// Update godoc
// @Summary      Editar la ficha de un medicamento
// @Description  Reemplaza la ficha; un cambio de cantidad registra un ajuste. Solo admin.
// @Tags         drugs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del medicamento"
// @Param        body  body  dto.UpdateDrugRequest  true  "ficha completa"
// @Success      200   {object}  dto.DrugResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drugs/{id} [put]
func (h *DrugHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDrugRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	drug, err := h.uc.UpdateDrug(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return drugError(c, err)
	}
	return c.JSON(dto.ToDrugResponse(drug, time.Now()))
}

// AdjustStock godoc
// @Summary      Ajustar cantidad manualmente
// @Description  Aplica un delta con signo; el motivo es obligatorio. Solo admin.
// @Tags         drugs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del medicamento"
// @Param        body  body  dto.AdjustStockRequest  true  "change (delta con signo) y reason"
// @Success      200   {object}  dto.DrugResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drugs/{id}/adjust [post]
func (h *DrugHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	drug, err := h.uc.AdjustStock(c.Context(), GetActor(c), c.Params("id"), in.Change, in.Reason)
	if err != nil {
		return drugError(c, err)
	}
	return c.JSON(dto.ToDrugResponse(drug, time.Now()))
}

// Delete godoc
// @Summary      Dar de baja un medicamento
// @Description  Retira la ficha y registra el ajuste de cierre. Solo admin.
// @Tags         drugs
// @Security     Bearer
// @Param        id  path  string  true  "ID del medicamento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drugs/{id} [delete]
func (h *DrugHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteDrug(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return drugError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Importación masiva desde .xlsx
// @Description  Archivo con seis columnas fijas (nombre, cantidad, unidad,
//               vencimiento, ubicación, notas); la primera fila es encabezado.
//               Cualquier fila inválida aborta el lote completo. Solo admin.
// @Tags         drugs
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo .xlsx"
// @Success      201   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/drugs/import [post]
func (h *DrugHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se requiere el campo file con el archivo .xlsx"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	defer file.Close()

	rows, err := h.importer.ParseDrugRows(file)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	drugs, err := h.uc.BulkImport(c.Context(), GetActor(c), rows)
	if err != nil {
		return drugError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ImportResult{
		Imported: len(drugs),
		Drugs:    dto.ToDrugResponses(drugs, time.Now()),
	})
}

// drugError mapea los errores de dominio del inventario a respuestas HTTP.
func drugError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol admin"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "medicamento no encontrado"})
	case errors.Is(err, domain.ErrIntegration):
		// La mutación quedó aplicada en memoria pero la persistencia externa falló.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "no se pudo guardar el inventario; reintenta la acción"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
