package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/application/usecase"
)

// WorkCenterHandler maneja las peticiones HTTP para centros de trabajo.
type WorkCenterHandler struct {
	uc *usecase.WorkCenterUseCase
}

// NewWorkCenterHandler construye el handler.
func NewWorkCenterHandler(uc *usecase.WorkCenterUseCase) *WorkCenterHandler {
	return &WorkCenterHandler{uc: uc}
}

// Create godoc
// @Summary      Crear centro de trabajo
// @Tags         work-centers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkCenterRequest  true  "Datos del centro"
// @Success      201   {object}  dto.WorkCenterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prd/work-centers [post]
func (h *WorkCenterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkCenterRequest
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
// @Summary      Obtener centro por ID
// @Tags         work-centers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del centro"
// @Success      200  {object}  dto.WorkCenterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prd/work-centers/{id} [get]
func (h *WorkCenterHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "centro de trabajo no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar centro de trabajo
// @Tags         work-centers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del centro"
// @Param        body  body  dto.UpdateWorkCenterRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.WorkCenterResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prd/work-centers/{id} [put]
func (h *WorkCenterHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWorkCenterRequest
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
		return notFound(c, "centro de trabajo no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar centros de trabajo
// @Tags         work-centers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Param        status  query  string  false  "Filtro por estado"
// @Param        search  query  string  false  "Búsqueda por código/nombre"
// @Success      200     {object}  dto.WorkCenterListResponse
// @Router       /api/prd/work-centers [get]
func (h *WorkCenterHandler) List(c *fiber.Ctx) error {
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
// @Summary      Eliminar centro (sin órdenes pendientes)
// @Tags         work-centers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del centro"
// @Success      204  "sin contenido"
// @Failure      409  {object}  dto.ErrorResponse  "tiene órdenes asignadas"
// @Router       /api/prd/work-centers/{id} [delete]
func (h *WorkCenterHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Capacity godoc
// @Summary      Capacidad diaria disponible del centro
// @Tags         work-centers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del centro"
// @Success      200  {object}  dto.CapacityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prd/work-centers/{id}/capacity [get]
func (h *WorkCenterHandler) Capacity(c *fiber.Ctx) error {
	out, err := h.uc.Capacity(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "centro de trabajo no encontrado")
	}
	return c.JSON(out)
}
