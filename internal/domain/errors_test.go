package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_MensajeConYSinValor(t *testing.T) {
	sinValor := NewValidationError("Nombre", "", "no puede estar vacío")
	assert.Contains(t, sinValor.Error(), "Nombre")
	assert.NotContains(t, sinValor.Error(), `""`)

	conValor := NewValidationError("Precio", "-3.00", "no puede ser negativo")
	assert.Contains(t, conValor.Error(), "-3.00")
}

func TestHelpers_DetectanTiposEnvueltos(t *testing.T) {
	ve := fmt.Errorf("fila 4: %w", NewValidationError("Nombre", "", "vacío"))
	assert.True(t, IsValidation(ve))
	assert.False(t, IsConflict(ve))

	ce := fmt.Errorf("importar: %w", &ConflictError{Code: "A-1", ExistingID: "p1", Reason: "otra identidad"})
	assert.True(t, IsConflict(ce))

	iv := fmt.Errorf("ajuste: %w", &InvariantViolation{ProductID: "p1", Stock: 2, Delta: -5, Reason: "stock negativo"})
	assert.True(t, IsInvariantViolation(iv))

	ue := fmt.Errorf("asistente: %w", &UnavailableError{Collaborator: "catalogo", Err: errors.New("caído")})
	assert.True(t, IsUnavailable(ue))
}

func TestUnavailableError_Unwrap(t *testing.T) {
	causa := errors.New("conexión rechazada")
	ue := &UnavailableError{Collaborator: "catalogo", Err: causa}

	assert.ErrorIs(t, ue, causa)
	assert.Contains(t, ue.Error(), "catalogo")
}
