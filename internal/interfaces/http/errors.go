package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ferreteria-api/internal/application/dto"
	"github.com/tu-usuario/ferreteria-api/internal/domain"
)

// errorStatus traduce un error de dominio a código HTTP y cuerpo. Cualquier
// error no reconocido es un 500 genérico.
func errorStatus(err error) (int, dto.ErrorResponse) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: ve.Error(),
			Field:   ve.Field,
			Value:   ve.Value,
		}
	}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "CONFLICT",
			Message: ce.Error(),
			Field:   "code",
			Value:   ce.Code,
		}
	}
	var iv *domain.InvariantViolation
	if errors.As(err, &iv) {
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:    "INVARIANT",
			Message: iv.Error(),
		}
	}
	if errors.Is(err, domain.ErrNotFound) {
		return fiber.StatusNotFound, dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "recurso no encontrado",
		}
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "DUPLICATE",
			Message: "el recurso ya existe",
		}
	}
	if domain.IsUnavailable(err) {
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{
			Code:    "UNAVAILABLE",
			Message: err.Error(),
		}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: err.Error(),
	}
}

// respondError traduce los errores de dominio a respuestas HTTP.
func respondError(c *fiber.Ctx, err error) error {
	status, body := errorStatus(err)
	return c.Status(status).JSON(body)
}
