// Package metrics expone los contadores Prometheus del servicio. Las capas
// de aplicación no conocen Prometheus: los handlers HTTP incrementan aquí.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ImportRows filas procesadas por resultado: created, updated, rejected.
	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ferreteria",
		Subsystem: "import",
		Name:      "rows_total",
		Help:      "Filas de importación procesadas, por resultado.",
	}, []string{"result"})

	// AlertEvaluations evaluaciones del motor de alertas.
	AlertEvaluations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ferreteria",
		Subsystem: "alerts",
		Name:      "evaluations_total",
		Help:      "Evaluaciones de alertas de stock ejecutadas.",
	})

	// AssistantRequests consultas al asistente por fuente de respuesta.
	AssistantRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ferreteria",
		Subsystem: "assistant",
		Name:      "requests_total",
		Help:      "Consultas al asistente, por fuente de la respuesta (llm o basico).",
	}, []string{"source"})

	// StockAdjustments ajustes de stock por resultado: ok, rejected.
	StockAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ferreteria",
		Subsystem: "catalog",
		Name:      "stock_adjustments_total",
		Help:      "Ajustes de stock solicitados, por resultado.",
	}, []string{"result"})
)

// Handler devuelve el handler HTTP del endpoint /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
