package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/tu-usuario/ferreteria-api/internal/application/alerts"
	"github.com/tu-usuario/ferreteria-api/internal/application/assistant"
	"github.com/tu-usuario/ferreteria-api/internal/application/catalog"
	"github.com/tu-usuario/ferreteria-api/internal/application/importer"
	"github.com/tu-usuario/ferreteria-api/internal/infrastructure/metrics"
	"github.com/tu-usuario/ferreteria-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *catalog.UseCase
	ImportUC    *importer.UseCase
	AlertsUC    *alerts.UseCase
	AskUC       *assistant.AskUseCase
	AlertReport *pdf.AlertReportGenerator
	// OnImported se invoca tras cada lote importado (ej. resetear el monitor).
	OnImported func()
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Observabilidad (público)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Productos
	productos := api.Group("/productos")
	productHandler := NewProductHandler(deps.CatalogUC)
	productos.Post("/", productHandler.Upsert)
	productos.Get("/", productHandler.List)
	productos.Get("/:id", productHandler.GetByIDOrCode)
	productos.Post("/:id/stock", productHandler.AdjustStock)
	productos.Delete("/:id", RequireRole("admin", "bodeguero"), productHandler.Deactivate)

	// Categorías
	categorias := api.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CatalogUC)
	categorias.Post("/", categoryHandler.Create)
	categorias.Get("/", categoryHandler.List)
	categorias.Delete("/:id", RequireRole("admin"), categoryHandler.Deactivate)

	// Importación (solo roles de bodega)
	importHandler := NewImportHandler(deps.ImportUC, deps.OnImported)
	api.Post("/importar", RequireRole("admin", "bodeguero"), importHandler.Import)

	// Alertas
	alertas := api.Group("/alertas")
	alertHandler := NewAlertHandler(deps.AlertsUC, deps.AlertReport)
	alertas.Get("/", alertHandler.List)
	alertas.Get("/reporte", alertHandler.Report)

	// Asistente
	assistantHandler := NewAssistantHandler(deps.AskUC)
	api.Post("/asistente/preguntar", assistantHandler.Ask)
}
