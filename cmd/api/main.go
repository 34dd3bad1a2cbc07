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

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/reports"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("nivel_log", log.Level().String()).
		Int("mes_inicio_fiscal", cfg.Fiscal.StartMonth).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Snapshot inmutable: las seis colecciones se cargan completas una sola
	// vez al arrancar y se comparten en solo lectura entre requests.
	datasetRepo := postgres.NewDatasetRepository(pool)
	start := time.Now()
	snapshot, err := datasetRepo.LoadDataset(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar snapshot de ventas")
	}
	log.Info().
		Int("ventas", len(snapshot.Sales)).
		Int("precios", len(snapshot.GrossPrices)).
		Int("productos", len(snapshot.Products)).
		Int("clientes", len(snapshot.Customers)).
		Dur("duracion", time.Since(start)).
		Msg("snapshot cargado")

	// Caché de reportes opcional: sin REDIS_ADDR el servicio calcula siempre.
	var reportCache reports.Cache
	if cfg.Redis.Enabled() {
		rc, err := cache.NewReportCache(cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rc.Close()
		reportCache = rc
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de reportes habilitado")
	}

	reportsUC := reports.NewUseCase(snapshot, time.Month(cfg.Fiscal.StartMonth), reportCache, log)

	userRepo := postgres.NewUserRepository(pool)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	renderer := infrapdf.NewMarotoReportRenderer()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID(log))

	// Swagger UI en /docs, solo si SWAGGER_FILE apunta a un swagger.json
	// generado (ej. `swag init -g cmd/api/main.go`); sin el archivo el
	// middleware fallaría al arrancar.
	if cfg.HTTP.DocsEnabled() {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Ventas Analytics API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportsUC: reportsUC,
		AuthUC:    authUC,
		Renderer:  renderer,
		JWTSecret: cfg.JWT.Secret,
	})

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
