package dto

// AlertDTO es una alerta de stock bajo derivada del catálogo.
// Severity: "critical" (agotado) o "warning" (en o bajo el mínimo).
type AlertDTO struct {
	ProductID    string `json:"product_id"`
	Code         string `json:"code,omitempty"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	Unit         string `json:"unit"`
	Severity     string `json:"severity"`
}
