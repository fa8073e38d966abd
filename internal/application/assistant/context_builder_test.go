package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/ferreteria-api/internal/domain"
	"github.com/tu-usuario/ferreteria-api/internal/domain/repository"
)

// catálogo fijo en memoria
type memCatalogo struct {
	summaries []repository.ProductSummary
	err       error
}

func (c *memCatalogo) ListSummaries(ctx context.Context) ([]repository.ProductSummary, error) {
	return c.summaries, c.err
}

func resumen(code, name, category string, stock, min int) repository.ProductSummary {
	return repository.ProductSummary{
		ID:           "id-" + name,
		Code:         code,
		Name:         name,
		CategoryName: category,
		Price:        decimal.NewFromFloat(9.99),
		Stock:        stock,
		MinStock:     min,
		Unit:         "unidad",
	}
}

func catalogoFerreteria() *memCatalogo {
	return &memCatalogo{summaries: []repository.ProductSummary{
		resumen("TRN-001", "Tornillo 3/8", "Tornillería", 100, 20),
		resumen("TRN-002", "Tornillo 1/2", "Tornillería", 4, 20),
		resumen("MAR-001", "Martillo de uña", "Herramientas", 12, 3),
		resumen("PIN-001", "Pintura blanca 1L", "Pinturas", 0, 5),
		resumen("", "Cinta métrica", "Herramientas", 30, 5),
	}}
}

func TestBuild_CoincidenciaParcialPorNombre(t *testing.T) {
	b := NewContextBuilder(catalogoFerreteria())

	snap, err := b.Build(context.Background(), "¿Tienes tornillos?", 0)
	require.NoError(t, err)

	require.Len(t, snap.Items, 2)
	assert.False(t, snap.Fallback)
	assert.Equal(t, "Tornillo 1/2", snap.Items[0].Name, "a igual rango, menor stock primero")
	assert.Equal(t, "Tornillo 3/8", snap.Items[1].Name)
}

func TestBuild_CodigoExactoGanaAlNombre(t *testing.T) {
	b := NewContextBuilder(catalogoFerreteria())

	snap, err := b.Build(context.Background(), "precio del TRN-001 y otros tornillos", 0)
	require.NoError(t, err)

	require.NotEmpty(t, snap.Items)
	assert.Equal(t, "TRN-001", snap.Items[0].Code, "la mención de código es la más específica")
}

func TestBuild_NombreCompletoSobreParcial(t *testing.T) {
	b := NewContextBuilder(catalogoFerreteria())

	snap, err := b.Build(context.Background(), "¿cuánto vale el martillo de uña?", 0)
	require.NoError(t, err)

	require.NotEmpty(t, snap.Items)
	assert.Equal(t, "Martillo de uña", snap.Items[0].Name)
}

func TestBuild_CoincidenciaPorCategoria(t *testing.T) {
	b := NewContextBuilder(catalogoFerreteria())

	snap, err := b.Build(context.Background(), "¿qué herramientas tienes?", 0)
	require.NoError(t, err)

	require.NotEmpty(t, snap.Items)
	for _, it := range snap.Items {
		assert.Equal(t, "Herramientas", it.Category)
	}
}

func TestBuild_IgnoraDiacriticosYMayusculas(t *testing.T) {
	b := NewContextBuilder(catalogoFerreteria())

	snap, err := b.Build(context.Background(), "PINTURA blanca", 0)
	require.NoError(t, err)

	require.NotEmpty(t, snap.Items)
	assert.Equal(t, "Pintura blanca 1L", snap.Items[0].Name)
}

func TestBuild_SinCoincidenciasCaeAStockBajo(t *testing.T) {
	b := NewContextBuilder(catalogoFerreteria())

	snap, err := b.Build(context.Background(), "¿venden pan?", 0)
	require.NoError(t, err)

	assert.True(t, snap.Fallback)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Pintura blanca 1L", snap.Items[0].Name, "agotado primero")
	assert.Equal(t, "Tornillo 1/2", snap.Items[1].Name)
	for _, it := range snap.Items {
		assert.True(t, it.LowStock)
	}
}

func TestBuild_RespetaMaxItems(t *testing.T) {
	b := NewContextBuilder(catalogoFerreteria())

	snap, err := b.Build(context.Background(), "tornillos", 1)
	require.NoError(t, err)

	assert.Len(t, snap.Items, 1)
}

func TestBuild_MaxItemsPorDefecto(t *testing.T) {
	var many []repository.ProductSummary
	for i := 0; i < 20; i++ {
		many = append(many, resumen("", "Tornillo variante", "Tornillería", i, 0))
	}
	b := NewContextBuilder(&memCatalogo{summaries: many})

	snap, err := b.Build(context.Background(), "tornillo", 0)
	require.NoError(t, err)

	assert.Len(t, snap.Items, DefaultMaxItems)
}

func TestBuild_CatalogoCaidoEsUnavailable(t *testing.T) {
	b := NewContextBuilder(&memCatalogo{err: errors.New("conexión rechazada")})

	_, err := b.Build(context.Background(), "tornillos", 0)

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}

func TestBuild_SerializaStockBajo(t *testing.T) {
	b := NewContextBuilder(catalogoFerreteria())

	snap, err := b.Build(context.Background(), "tornillos", 0)
	require.NoError(t, err)

	assert.Contains(t, snap.Text, "Tornillo 1/2")
	assert.Contains(t, snap.Text, "BAJO", "el extracto marca los productos en alerta")
}
