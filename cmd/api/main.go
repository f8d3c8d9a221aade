package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/plataforma-app/erp-api/internal/application/auth"
	"github.com/plataforma-app/erp-api/internal/application/usecase"
	infrapdf "github.com/plataforma-app/erp-api/internal/infrastructure/pdf"
	"github.com/plataforma-app/erp-api/internal/infrastructure/postgres"
	httpRouter "github.com/plataforma-app/erp-api/internal/interfaces/http"
	"github.com/plataforma-app/erp-api/pkg/config"
	"github.com/plataforma-app/erp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool, log.Module("db")); err != nil {
		log.Fatal().Err(err).Msg("migración de esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	qualityRepo := postgres.NewQualityRepository(pool)
	workCenterRepo := postgres.NewWorkCenterRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, sessionRepo,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		auth.SessionConfig{
			RefreshExpMinutes: cfg.Session.RefreshExpiration,
		},
	)
	userUC := usecase.NewUserUseCase(userRepo, sessionRepo)
	bomUC := usecase.NewBOMUseCase(bomRepo)
	orderUC := usecase.NewProductionOrderUseCase(orderRepo, bomRepo, workCenterRepo)
	qualityUC := usecase.NewQualityUseCase(qualityRepo, orderRepo)
	workCenterUC := usecase.NewWorkCenterUseCase(workCenterRepo, orderRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo, taskRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo, projectRepo)

	// PDF: reporte de orden de producción
	reportGenerator := infrapdf.NewMarotoOrderReport()
	orderReportUC := usecase.NewOrderReportUseCase(orderRepo, bomRepo, workCenterRepo, qualityRepo, reportGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Plataforma ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		BOMUC:         bomUC,
		OrderUC:       orderUC,
		OrderReportUC: orderReportUC,
		QualityUC:     qualityUC,
		WorkCenterUC:  workCenterUC,
		ProjectUC:     projectUC,
		TaskUC:        taskUC,
		LoginRPM:      cfg.Session.LoginRPM,
	})

	// Limpieza periódica de sesiones vencidas.
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				n, err := sessionRepo.DeleteExpired(cleanupCtx)
				if err != nil {
					log.Warn().Err(err).Msg("limpieza de sesiones vencidas")
					continue
				}
				if n > 0 {
					log.Info().Int64("eliminadas", n).Msg("sesiones vencidas limpiadas")
				}
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
