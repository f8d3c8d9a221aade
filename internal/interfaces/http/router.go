package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plataforma-app/erp-api/internal/application/auth"
	"github.com/plataforma-app/erp-api/internal/application/usecase"
	"github.com/plataforma-app/erp-api/internal/domain/permission"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	BOMUC         *usecase.BOMUseCase
	OrderUC       *usecase.ProductionOrderUseCase
	OrderReportUC *usecase.OrderReportUseCase
	QualityUC     *usecase.QualityUseCase
	WorkCenterUC  *usecase.WorkCenterUseCase
	ProjectUC     *usecase.ProjectUseCase
	TaskUC        *usecase.TaskUseCase
	LoginRPM      int // límite por IP para login/register/refresh
}

// Router registra las rutas de la API. Cada ruta protegida compone
// AuthMiddleware → RequirePermission → handler, en ese orden. Los sub-paths
// estáticos (/stats, /reports/...) se registran antes de /:id para que el
// matcher de parámetros nunca los capture.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authGate := AuthMiddleware(deps.AuthUC)
	rateLimit := RateLimitMiddleware(deps.LoginRPM)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", rateLimit, authHandler.Register)
	authGroup.Post("/login", rateLimit, authHandler.Login)
	authGroup.Post("/refresh", rateLimit, authHandler.Refresh)
	authGroup.Post("/forgot-password", rateLimit, authHandler.ForgotPassword)
	authGroup.Post("/reset-password", rateLimit, authHandler.ResetPassword)
	authGroup.Post("/logout", authGate, authHandler.Logout)
	authGroup.Get("/profile", authGate, authHandler.Profile)
	authGroup.Put("/profile", authGate, authHandler.UpdateProfile)

	// Módulo de producción
	prd := api.Group("/prd", authGate)

	bom := prd.Group("/bom")
	bomHandler := NewBOMHandler(deps.BOMUC)
	canBOM := func(action string) fiber.Handler { return RequirePermission(permission.ResourceBOM, action) }
	bom.Get("/", canBOM(permission.ActionRead), bomHandler.List)
	bom.Get("/stats", canBOM(permission.ActionRead), bomHandler.Stats)
	bom.Post("/", canBOM(permission.ActionCreate), bomHandler.Create)
	bom.Get("/:id", canBOM(permission.ActionRead), bomHandler.GetByID)
	bom.Put("/:id", canBOM(permission.ActionUpdate), bomHandler.Update)
	bom.Delete("/:id", canBOM(permission.ActionDelete), bomHandler.Delete)
	bom.Get("/:id/explode", canBOM(permission.ActionRead), bomHandler.Explode)
	bom.Get("/:id/cost", canBOM(permission.ActionRead), bomHandler.Cost)

	orders := prd.Group("/production-orders")
	orderHandler := NewProductionOrderHandler(deps.OrderUC, deps.OrderReportUC)
	canOrder := func(action string) fiber.Handler {
		return RequirePermission(permission.ResourceProductionOrder, action)
	}
	orders.Get("/", canOrder(permission.ActionRead), orderHandler.List)
	orders.Get("/stats", canOrder(permission.ActionRead), orderHandler.Stats)
	orders.Get("/reports/:id", canOrder(permission.ActionRead), orderHandler.Report)
	orders.Post("/", canOrder(permission.ActionCreate), orderHandler.Create)
	orders.Get("/:id", canOrder(permission.ActionRead), orderHandler.GetByID)
	orders.Put("/:id", canOrder(permission.ActionUpdate), orderHandler.Update)
	orders.Delete("/:id", canOrder(permission.ActionDelete), orderHandler.Delete)
	orders.Post("/:id/release", canOrder(permission.ActionExecute), orderHandler.Release)
	orders.Post("/:id/start", canOrder(permission.ActionExecute), orderHandler.Start)
	orders.Post("/:id/finish", canOrder(permission.ActionExecute), orderHandler.Finish)
	orders.Post("/:id/cancel", canOrder(permission.ActionExecute), orderHandler.Cancel)

	quality := prd.Group("/quality")
	qualityHandler := NewQualityHandler(deps.QualityUC)
	canQC := func(action string) fiber.Handler { return RequirePermission(permission.ResourceQuality, action) }
	quality.Get("/", canQC(permission.ActionRead), qualityHandler.List)
	quality.Get("/stats", canQC(permission.ActionRead), qualityHandler.Stats)
	quality.Post("/", canQC(permission.ActionCreate), qualityHandler.Create)
	quality.Get("/:id", canQC(permission.ActionRead), qualityHandler.GetByID)
	quality.Put("/:id", canQC(permission.ActionUpdate), qualityHandler.Update)
	quality.Delete("/:id", canQC(permission.ActionDelete), qualityHandler.Delete)
	quality.Post("/:id/inspect", canQC(permission.ActionExecute), qualityHandler.Inspect)

	workCenters := prd.Group("/work-centers")
	wcHandler := NewWorkCenterHandler(deps.WorkCenterUC)
	canWC := func(action string) fiber.Handler { return RequirePermission(permission.ResourceWorkCenter, action) }
	workCenters.Get("/", canWC(permission.ActionRead), wcHandler.List)
	workCenters.Post("/", canWC(permission.ActionCreate), wcHandler.Create)
	workCenters.Get("/:id", canWC(permission.ActionRead), wcHandler.GetByID)
	workCenters.Put("/:id", canWC(permission.ActionUpdate), wcHandler.Update)
	workCenters.Delete("/:id", canWC(permission.ActionDelete), wcHandler.Delete)
	workCenters.Get("/:id/capacity", canWC(permission.ActionRead), wcHandler.Capacity)

	// Módulo de proyectos
	pro := api.Group("/pro", authGate)

	projects := pro.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	canProject := func(action string) fiber.Handler { return RequirePermission(permission.ResourceProject, action) }
	projects.Get("/", canProject(permission.ActionRead), projectHandler.List)
	projects.Get("/stats", canProject(permission.ActionRead), projectHandler.Stats)
	projects.Post("/", canProject(permission.ActionCreate), projectHandler.Create)
	projects.Get("/:id", canProject(permission.ActionRead), projectHandler.GetByID)
	projects.Put("/:id", canProject(permission.ActionUpdate), projectHandler.Update)
	projects.Delete("/:id", canProject(permission.ActionDelete), projectHandler.Delete)

	tasks := pro.Group("/tasks")
	taskHandler := NewTaskHandler(deps.TaskUC)
	canTask := func(action string) fiber.Handler { return RequirePermission(permission.ResourceTask, action) }
	tasks.Get("/", canTask(permission.ActionRead), taskHandler.List)
	tasks.Post("/", canTask(permission.ActionCreate), taskHandler.Create)
	tasks.Get("/:id", canTask(permission.ActionRead), taskHandler.GetByID)
	tasks.Put("/:id", canTask(permission.ActionUpdate), taskHandler.Update)
	tasks.Delete("/:id", canTask(permission.ActionDelete), taskHandler.Delete)
	tasks.Post("/:id/status", canTask(permission.ActionExecute), taskHandler.ChangeStatus)

	// Administración de usuarios
	users := api.Group("/users", authGate)
	userHandler := NewUserHandler(deps.UserUC)
	canUser := func(action string) fiber.Handler { return RequirePermission(permission.ResourceUser, action) }
	users.Get("/", canUser(permission.ActionRead), userHandler.List)
	users.Get("/:id", canUser(permission.ActionRead), userHandler.GetByID)
	users.Put("/:id", canUser(permission.ActionUpdate), userHandler.Update)
	users.Delete("/:id", canUser(permission.ActionDelete), userHandler.Delete)
}
