package dto

import "github.com/shopspring/decimal"

// AskRequest entrada del asistente: pregunta libre del usuario.
type AskRequest struct {
	Question string `json:"question" validate:"required"`
	MaxItems int    `json:"max_items"`
}

// ContextItem es el resumen de un producto seleccionado para el contexto.
type ContextItem struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code,omitempty"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
	Unit      string          `json:"unit"`
	LowStock  bool            `json:"low_stock"`
}

// ContextSnapshot es el extracto acotado de inventario que acompaña una
// consulta del asistente. Efímero: se descarta tras enviar el prompt.
// Fallback indica que ningún producto coincidió y se usó la lista de stock
// bajo en su lugar.
type ContextSnapshot struct {
	Items    []ContextItem `json:"items"`
	Text     string        `json:"text"`
	Fallback bool          `json:"fallback"`
}

// AskResponse salida del asistente. Source: "llm" o "basico".
type AskResponse struct {
	Answer  string          `json:"answer"`
	Source  string          `json:"source"`
	Context ContextSnapshot `json:"context"`
}
