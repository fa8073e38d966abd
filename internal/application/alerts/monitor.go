package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/ferreteria-api/pkg/logger"
)

// StockMonitor evalúa alertas periódicamente y registra las nuevas. Recuerda
// qué productos ya notificó en la sesión para no repetir el aviso en cada
// ciclo; Reset limpia esa memoria (típicamente tras una importación).
type StockMonitor struct {
	alerts      *UseCase
	interval    time.Duration
	log         *logger.Logger
	onEvaluated func()

	mu       sync.Mutex
	notified map[string]bool
}

// NewStockMonitor construye el monitor. Si interval <= 0 usa 20 minutos.
// onEvaluated se invoca tras cada evaluación completada, para contadores;
// puede ser nil.
func NewStockMonitor(alerts *UseCase, interval time.Duration, log *logger.Logger, onEvaluated func()) *StockMonitor {
	if interval <= 0 {
		interval = 20 * time.Minute
	}
	return &StockMonitor{
		alerts:      alerts,
		interval:    interval,
		log:         log,
		onEvaluated: onEvaluated,
		notified:    make(map[string]bool),
	}
}

// Run evalúa de inmediato y luego en cada tick hasta que ctx se cancele.
// Pensado para correr en su propia goroutine.
func (m *StockMonitor) Run(ctx context.Context) {
	m.check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("monitor de stock detenido")
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// Reset olvida los productos ya notificados. Las alertas que sigan vigentes
// se vuelven a registrar en el próximo ciclo.
func (m *StockMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notified = make(map[string]bool)
}

func (m *StockMonitor) check(ctx context.Context) {
	current, err := m.alerts.Evaluate(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("evaluación de alertas fallida")
		return
	}
	if m.onEvaluated != nil {
		m.onEvaluated()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	active := make(map[string]bool, len(current))
	for _, a := range current {
		active[a.ProductID] = true
		if m.notified[a.ProductID] {
			continue
		}
		m.notified[a.ProductID] = true
		m.log.Warn().
			Str("producto_id", a.ProductID).
			Str("producto", a.Name).
			Int("stock", a.CurrentStock).
			Int("minimo", a.MinStock).
			Str("severidad", a.Severity).
			Msg("alerta de stock")
	}
	// Productos recuperados salen de la memoria: si recaen, se vuelve a avisar.
	for id := range m.notified {
		if !active[id] {
			delete(m.notified, id)
		}
	}
}
