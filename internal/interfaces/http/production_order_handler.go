package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/application/usecase"
)

// ProductionOrderHandler maneja las peticiones HTTP para órdenes de producción.
type ProductionOrderHandler struct {
	uc       *usecase.ProductionOrderUseCase
	reportUC *usecase.OrderReportUseCase
}

// NewProductionOrderHandler construye el handler.
func NewProductionOrderHandler(uc *usecase.ProductionOrderUseCase, reportUC *usecase.OrderReportUseCase) *ProductionOrderHandler {
	return &ProductionOrderHandler{uc: uc, reportUC: reportUC}
}

// Create godoc
// @Summary      Crear orden de producción (queda draft)
// @Tags         production-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prd/production-orders [post]
func (h *ProductionOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
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
// @Summary      Obtener orden por ID
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prd/production-orders/{id} [get]
func (h *ProductionOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "orden no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden (solo draft o released)
// @Tags         production-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la orden"
// @Param        body  body  dto.UpdateProductionOrderRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ProductionOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prd/production-orders/{id} [put]
func (h *ProductionOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductionOrderRequest
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
		return notFound(c, "orden no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de producción
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Param        status  query  string  false  "Filtro por estado"
// @Param        search  query  string  false  "Búsqueda por código/notas"
// @Success      200     {object}  dto.ProductionOrderListResponse
// @Router       /api/prd/production-orders [get]
func (h *ProductionOrderHandler) List(c *fiber.Ctx) error {
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
// @Summary      Eliminar orden (solo draft)
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/prd/production-orders/{id} [delete]
func (h *ProductionOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Release godoc
// @Summary      Liberar orden (draft → released)
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/prd/production-orders/{id}/release [post]
func (h *ProductionOrderHandler) Release(c *fiber.Ctx) error {
	return h.action(c, h.uc.Release)
}

// Start godoc
// @Summary      Iniciar orden (released → in_progress)
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      409  {object}  dto.ErrorResponse  "orden en estado no iniciable"
// @Router       /api/prd/production-orders/{id}/start [post]
func (h *ProductionOrderHandler) Start(c *fiber.Ctx) error {
	return h.action(c, h.uc.Start)
}

// Finish godoc
// @Summary      Terminar orden (in_progress → finished)
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/prd/production-orders/{id}/finish [post]
func (h *ProductionOrderHandler) Finish(c *fiber.Ctx) error {
	return h.action(c, h.uc.Finish)
}

// Cancel godoc
// @Summary      Cancelar orden (cualquier estado no terminal)
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/prd/production-orders/{id}/cancel [post]
func (h *ProductionOrderHandler) Cancel(c *fiber.Ctx) error {
	return h.action(c, h.uc.Cancel)
}

func (h *ProductionOrderHandler) action(c *fiber.Ctx, fn func(string) (*dto.ProductionOrderResponse, error)) error {
	out, err := fn(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "orden no encontrada")
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Conteo de órdenes por estado
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/prd/production-orders/stats [get]
func (h *ProductionOrderHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de la orden
// @Tags         production-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prd/production-orders/reports/{id} [get]
func (h *ProductionOrderHandler) Report(c *fiber.Ctx) error {
	pdfBytes, err := h.reportUC.Generate(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if pdfBytes == nil {
		return notFound(c, "orden no encontrada")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="orden-produccion.pdf"`)
	return c.Send(pdfBytes)
}
