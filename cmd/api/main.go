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

	"github.com/drewshoe/top40-api/internal/application/ports"
	"github.com/drewshoe/top40-api/internal/application/reporting"
	"github.com/drewshoe/top40-api/internal/infrastructure/cache"
	"github.com/drewshoe/top40-api/internal/infrastructure/erp"
	infrapdf "github.com/drewshoe/top40-api/internal/infrastructure/pdf"
	httpRouter "github.com/drewshoe/top40-api/internal/interfaces/http"
	"github.com/drewshoe/top40-api/pkg/config"
	"github.com/drewshoe/top40-api/pkg/logger"
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

	erpClient := erp.NewClient(cfg.ERP, log.Component("erp_client"))
	log.Info().Str("restlet_url", erpClient.RestletURL()).Msg("cliente ERP configurado")

	// Cache de reportes según driver configurado
	var reportCache ports.ReportCache
	switch cfg.Cache.Driver {
	case "redis":
		redisCache := cache.NewRedis(cfg.Cache.RedisAddr, cfg.Cache.RedisPass, cfg.Cache.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("Redis no responde, se sigue sin cache")
			reportCache = cache.Noop{}
		} else {
			reportCache = redisCache
			defer redisCache.Close()
		}
		cancel()
	case "none":
		reportCache = cache.Noop{}
	default:
		reportCache = cache.NewMemory()
	}
	log.Info().Str("driver", cfg.Cache.Driver).Dur("ttl", cfg.Cache.TTL()).Msg("cache de reportes")

	reportUC := reporting.NewUseCase(
		erpClient, reportCache, cfg.Cache.TTL(), log.Component("report_usecase"),
	)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // los reportes grandes tardan más que un CRUD
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Top 40 Sales API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:  reportUC,
		PDFGen:    pdfGenerator,
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
