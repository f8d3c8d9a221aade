package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/application/usecase"
)

// BOMHandler maneja las peticiones HTTP para listas de materiales.
type BOMHandler struct {
	uc *usecase.BOMUseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *usecase.BOMUseCase) *BOMHandler {
	return &BOMHandler{uc: uc}
}

// Create godoc
// @Summary      Crear BOM
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMRequest  true  "Datos de la BOM"
// @Success      201   {object}  dto.BOMResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prd/bom [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBOMRequest
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
// @Summary      Obtener BOM por ID
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la BOM"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prd/bom/{id} [get]
func (h *BOMHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "BOM no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar BOM
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la BOM"
// @Param        body  body  dto.UpdateBOMRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.BOMResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prd/bom/{id} [put]
func (h *BOMHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBOMRequest
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
		return notFound(c, "BOM no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar BOMs
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Param        status  query  string  false  "Filtro por estado"
// @Param        search  query  string  false  "Búsqueda por código/nombre"
// @Success      200     {object}  dto.BOMListResponse
// @Router       /api/prd/bom [get]
func (h *BOMHandler) List(c *fiber.Ctx) error {
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
// @Summary      Eliminar BOM
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la BOM"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/prd/bom/{id} [delete]
func (h *BOMHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats godoc
// @Summary      Conteo de BOMs por estado
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/prd/bom/stats [get]
func (h *BOMHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Explode godoc
// @Summary      Explosión multinivel de la BOM
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la BOM"
// @Success      200  {object}  dto.ExplodeBOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "ciclo de subensambles"
// @Router       /api/prd/bom/{id}/explode [get]
func (h *BOMHandler) Explode(c *fiber.Ctx) error {
	out, err := h.uc.Explode(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "BOM no encontrada")
	}
	return c.JSON(out)
}

// Cost godoc
// @Summary      Costo unitario estimado según la BOM explotada
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la BOM"
// @Success      200  {object}  dto.BOMCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prd/bom/{id}/cost [get]
func (h *BOMHandler) Cost(c *fiber.Ctx) error {
	out, err := h.uc.Cost(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "BOM no encontrada")
	}
	return c.JSON(out)
}
