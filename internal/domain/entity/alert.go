package entity

// AlertSeverity nivel de una alerta de stock.
type AlertSeverity string

const (
	// SeverityCritical producto agotado (stock == 0).
	SeverityCritical AlertSeverity = "critical"
	// SeverityWarning stock positivo pero en o bajo el mínimo.
	SeverityWarning AlertSeverity = "warning"
)

// SeverityFor clasifica el stock de un producto ya sabido en alerta.
func SeverityFor(stock int) AlertSeverity {
	if stock == 0 {
		return SeverityCritical
	}
	return SeverityWarning
}
