package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/ferreteria-api/pkg/logger"
)

func TestStockMonitor_NoRepiteNotificaciones(t *testing.T) {
	uc, cat := newFixture(t)
	crearProducto(t, cat, "A-1", "Alicate", 0, 5)
	m := NewStockMonitor(uc, time.Minute, logger.Nop(), nil)

	m.check(context.Background())
	require.Len(t, m.notified, 1)

	// Segundo ciclo con la misma alerta vigente: la memoria no crece.
	m.check(context.Background())
	assert.Len(t, m.notified, 1)
}

func TestStockMonitor_ResetPermiteReNotificar(t *testing.T) {
	uc, cat := newFixture(t)
	crearProducto(t, cat, "A-1", "Alicate", 0, 5)
	m := NewStockMonitor(uc, time.Minute, logger.Nop(), nil)

	m.check(context.Background())
	require.Len(t, m.notified, 1)

	m.Reset()
	assert.Empty(t, m.notified)

	m.check(context.Background())
	assert.Len(t, m.notified, 1)
}

func TestStockMonitor_OlvidaProductosRecuperados(t *testing.T) {
	uc, cat := newFixture(t)
	p := crearProducto(t, cat, "A-1", "Alicate", 0, 5)
	m := NewStockMonitor(uc, time.Minute, logger.Nop(), nil)

	m.check(context.Background())
	require.Len(t, m.notified, 1)

	_, err := cat.AdjustStock(context.Background(), p.ID, 50)
	require.NoError(t, err)

	m.check(context.Background())
	assert.Empty(t, m.notified, "recuperado: si recae se vuelve a avisar")
}

func TestStockMonitor_CuentaCadaEvaluacion(t *testing.T) {
	uc, cat := newFixture(t)
	crearProducto(t, cat, "A-1", "Alicate", 0, 5)

	evaluadas := 0
	m := NewStockMonitor(uc, time.Minute, logger.Nop(), func() { evaluadas++ })

	m.check(context.Background())
	m.check(context.Background())

	assert.Equal(t, 2, evaluadas, "el contador avanza aunque no haya alertas nuevas")
}

func TestStockMonitor_RunSeDetieneConContexto(t *testing.T) {
	uc, _ := newFixture(t)
	m := NewStockMonitor(uc, 10*time.Millisecond, logger.Nop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("el monitor no se detuvo al cancelar el contexto")
	}
}

func TestStockMonitor_IntervaloPorDefecto(t *testing.T) {
	uc, _ := newFixture(t)
	m := NewStockMonitor(uc, 0, logger.Nop(), nil)
	assert.Equal(t, 20*time.Minute, m.interval)
}
