package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ferreteria-api/internal/application/assistant"
	"github.com/tu-usuario/ferreteria-api/internal/application/dto"
	"github.com/tu-usuario/ferreteria-api/internal/infrastructure/metrics"
)

// AssistantHandler expone el asistente conversacional (protegido).
type AssistantHandler struct {
	uc *assistant.AskUseCase
}

// NewAssistantHandler construye el handler.
func NewAssistantHandler(uc *assistant.AskUseCase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

// Ask godoc
// @Summary      Preguntar al asistente
// @Description  Arma un extracto acotado del inventario relevante a la pregunta y responde con el modelo configurado, o en modo básico si no hay modelo disponible.
// @Tags         asistente
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AskRequest  true  "Pregunta del usuario"
// @Success      200   {object}  dto.AskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/asistente/preguntar [post]
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var in dto.AskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Ask(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	metrics.AssistantRequests.WithLabelValues(out.Source).Inc()
	return c.JSON(out)
}
