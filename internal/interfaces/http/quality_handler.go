package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/application/usecase"
)

// QualityHandler maneja las peticiones HTTP para controles de calidad.
type QualityHandler struct {
	uc *usecase.QualityUseCase
}

// NewQualityHandler construye el handler.
func NewQualityHandler(uc *usecase.QualityUseCase) *QualityHandler {
	return &QualityHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir control de calidad (queda pending)
// @Tags         quality
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQualityControlRequest  true  "Datos del control"
// @Success      201   {object}  dto.QualityControlResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "orden inexistente"
// @Router       /api/prd/quality [post]
func (h *QualityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQualityControlRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener control por ID
// @Tags         quality
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del control"
// @Success      200  {object}  dto.QualityControlResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prd/quality/{id} [get]
func (h *QualityHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "control de calidad no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar control (solo pending)
// @Tags         quality
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del control"
// @Param        body  body  dto.UpdateQualityControlRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.QualityControlResponse
// @Failure      409   {object}  dto.ErrorResponse  "control ya resuelto"
// @Router       /api/prd/quality/{id} [put]
func (h *QualityHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateQualityControlRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "control de calidad no encontrado")
	}
	return c.JSON(out)
}

// Inspect godoc
// @Summary      Registrar inspección (pending → passed/failed)
// @Tags         quality
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del control"
// @Param        body  body  dto.InspectRequest  true  "resultado de la inspección"
// @Success      200   {object}  dto.QualityControlResponse
// @Failure      409   {object}  dto.ErrorResponse  "control ya resuelto"
// @Router       /api/prd/quality/{id}/inspect [post]
func (h *QualityHandler) Inspect(c *fiber.Ctx) error {
	var in dto.InspectRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Inspect(c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "control de calidad no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar controles de calidad
// @Tags         quality
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Param        status  query  string  false  "Filtro por estado"
// @Param        search  query  string  false  "Búsqueda por código/notas"
// @Success      200     {object}  dto.QualityControlListResponse
// @Router       /api/prd/quality [get]
func (h *QualityHandler) List(c *fiber.Ctx) error {
	in, err := parseListRequest(c)
	if err != nil {
		return badRequest(c, "parámetros de listado inválidos")
	}
	out, err := h.uc.List(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar control de calidad
// @Tags         quality
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del control"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prd/quality/{id} [delete]
func (h *QualityHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats godoc
// @Summary      Conteo de controles por estado
// @Tags         quality
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/prd/quality/stats [get]
func (h *QualityHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
