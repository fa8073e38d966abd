package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound  = errors.New("recurso no encontrado")
	ErrDuplicate = errors.New("recurso duplicado")
)

// ValidationError indica un campo ausente o malformado. Es recuperable y
// acotado a la fila/operación; lleva el campo y el valor ofensivo para que
// la capa de presentación arme un mensaje específico.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("validación: campo %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validación: campo %s (%q): %s", e.Field, e.Value, e.Reason)
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// ConflictError indica una colisión de identidad ambigua: el código ya existe
// en otro producto con distinta combinación nombre/categoría. Se rechaza salvo
// intención explícita de actualización.
type ConflictError struct {
	Code       string
	ExistingID string
	Reason     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicto: código %q ya pertenece al producto %s: %s", e.Code, e.ExistingID, e.Reason)
}

// InvariantViolation indica que la operación rompería una garantía del
// almacén (ej. stock negativo). Nunca se degrada a advertencia ni se ajusta
// silenciosamente.
type InvariantViolation struct {
	ProductID string
	Stock     int
	Delta     int
	Reason    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariante: producto %s: %s (stock %d, delta %d)", e.ProductID, e.Reason, e.Stock, e.Delta)
}

// UnavailableError indica que un colaborador (almacén, LLM) no está
// disponible. Se propaga sin reintentos; la política de retry pertenece a la
// infraestructura externa.
type UnavailableError struct {
	Collaborator string
	Err          error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s no disponible: %v", e.Collaborator, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// IsValidation reporta si err es (o envuelve) un ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reporta si err es (o envuelve) un ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsInvariantViolation reporta si err es (o envuelve) un InvariantViolation.
func IsInvariantViolation(err error) bool {
	var iv *InvariantViolation
	return errors.As(err, &iv)
}

// IsUnavailable reporta si err es (o envuelve) un UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}
