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

	"github.com/tu-usuario/ferreteria-api/internal/application/alerts"
	"github.com/tu-usuario/ferreteria-api/internal/application/assistant"
	"github.com/tu-usuario/ferreteria-api/internal/application/catalog"
	"github.com/tu-usuario/ferreteria-api/internal/application/importer"
	"github.com/tu-usuario/ferreteria-api/internal/application/ports"
	infraai "github.com/tu-usuario/ferreteria-api/internal/infrastructure/ai"
	"github.com/tu-usuario/ferreteria-api/internal/infrastructure/metrics"
	infrapdf "github.com/tu-usuario/ferreteria-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/ferreteria-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/ferreteria-api/internal/interfaces/http"
	"github.com/tu-usuario/ferreteria-api/pkg/config"
	"github.com/tu-usuario/ferreteria-api/pkg/logger"
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

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewUseCase(txRunner, productRepo, categoryRepo)
	importUC := importer.NewUseCase(catalogUC, log)
	alertsUC := alerts.NewUseCase(catalogUC)
	contextBuilder := assistant.NewContextBuilder(catalogUC)

	// Adaptador LLM según el proveedor configurado; sin proveedor el
	// asistente trabaja en modo básico.
	var llm ports.TextCompletion
	switch cfg.AI.Provider {
	case "groq":
		llm = infraai.NewGroqService(cfg.AI.GroqAPIKey, cfg.AI.GroqModel)
	case "gemini":
		llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	default:
		log.Info().Msg("asistente sin modelo de lenguaje: solo modo básico")
	}
	askUC := assistant.NewAskUseCase(contextBuilder, llm, log)

	// Monitor de stock en segundo plano
	monitor := alerts.NewStockMonitor(
		alertsUC,
		time.Duration(cfg.Alertas.IntervaloMinutos)*time.Minute,
		log,
		metrics.AlertEvaluations.Inc,
	)
	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()
	go monitor.Run(monitorCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // la importación de lotes grandes tarda
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ferretería API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:   catalogUC,
		ImportUC:    importUC,
		AlertsUC:    alertsUC,
		AskUC:       askUC,
		AlertReport: infrapdf.NewAlertReportGenerator(cfg.App.Name),
		OnImported:  monitor.Reset,
		JWTSecret:   cfg.JWT.Secret,
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
	stopMonitor()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
