package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ferreteria-api/internal/application/dto"
	"github.com/tu-usuario/ferreteria-api/internal/application/importer"
	"github.com/tu-usuario/ferreteria-api/internal/application/ports"
	"github.com/tu-usuario/ferreteria-api/internal/infrastructure/metrics"
	"github.com/tu-usuario/ferreteria-api/internal/infrastructure/tabular"
)

// ImportHandler recibe archivos de importación (protegido).
type ImportHandler struct {
	uc *importer.UseCase
	// onImported se invoca tras un lote exitoso (ej. resetear el monitor).
	onImported func()
}

// NewImportHandler construye el handler. onImported puede ser nil.
func NewImportHandler(uc *importer.UseCase, onImported func()) *ImportHandler {
	return &ImportHandler{uc: uc, onImported: onImported}
}

// Import godoc
// @Summary      Importar productos desde archivo
// @Description  Acepta .xlsx o .xml (campo multipart "archivo"). Cada fila se valida de forma aislada; el reporte detalla los rechazos.
// @Tags         importacion
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo  formData  file  true  "Archivo .xlsx o .xml"
// @Success      200  {object}  dto.ImportReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ImportErrorResponse
// @Router       /api/importar [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart 'archivo' requerido"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer file.Close()

	var source ports.TabularSource
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xlsx":
		source = tabular.NewExcelSource(file)
	case ".xml":
		source = tabular.NewXMLSource(file)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "UNSUPPORTED_FORMAT",
			Message: "formato no soportado: use .xlsx o .xml",
		})
	}

	report, err := h.uc.Import(c.UserContext(), source)
	if report != nil {
		metrics.ImportRows.WithLabelValues("created").Add(float64(report.Created))
		metrics.ImportRows.WithLabelValues("updated").Add(float64(report.Updated))
		metrics.ImportRows.WithLabelValues("rejected").Add(float64(report.Rejected))
	}
	if err != nil {
		if report == nil {
			return respondError(c, err)
		}
		// Lote interrumpido: las filas ya aplicadas quedan y el reporte
		// parcial es la única evidencia de cuáles fueron.
		status, body := errorStatus(err)
		return c.Status(status).JSON(dto.ImportErrorResponse{Error: body, Report: report})
	}

	if h.onImported != nil {
		h.onImported()
	}
	return c.JSON(report)
}
