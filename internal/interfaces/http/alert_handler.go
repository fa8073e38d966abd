package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ferreteria-api/internal/application/alerts"
	"github.com/tu-usuario/ferreteria-api/internal/infrastructure/metrics"
	"github.com/tu-usuario/ferreteria-api/internal/infrastructure/pdf"
)

// AlertHandler expone las alertas de stock (protegido).
type AlertHandler struct {
	uc     *alerts.UseCase
	report *pdf.AlertReportGenerator
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.UseCase, report *pdf.AlertReportGenerator) *AlertHandler {
	return &AlertHandler{uc: uc, report: report}
}

// List godoc
// @Summary      Listar alertas de stock
// @Description  Evalúa el catálogo al momento: critical = agotado, warning = en o bajo el mínimo.
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertDTO
// @Router       /api/alertas [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Evaluate(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	metrics.AlertEvaluations.Inc()
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de alertas de stock
// @Tags         alertas
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/alertas/reporte [get]
func (h *AlertHandler) Report(c *fiber.Ctx) error {
	current, err := h.uc.Evaluate(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	metrics.AlertEvaluations.Inc()

	doc, err := h.report.Generate(c.UserContext(), current)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="alertas-stock.pdf"`)
	return c.Send(doc)
}
