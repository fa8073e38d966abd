package alerts

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/ferreteria-api/internal/application/apptest"
	"github.com/tu-usuario/ferreteria-api/internal/application/catalog"
	"github.com/tu-usuario/ferreteria-api/internal/domain/entity"
)

func newFixture(t *testing.T) (*UseCase, *catalog.UseCase) {
	t.Helper()
	products := apptest.NewProductRepo()
	categories := apptest.NewCategoryRepo()
	tx := &apptest.TxRunner{Products: products, Categories: categories}
	cat := catalog.NewUseCase(tx, products, categories)
	return NewUseCase(cat), cat
}

func crearProducto(t *testing.T, cat *catalog.UseCase, code, name string, stock, min int) *entity.Product {
	t.Helper()
	c, err := cat.GetOrCreateCategory(context.Background(), "Herramientas", "")
	require.NoError(t, err)
	p, _, err := cat.UpsertProduct(context.Background(), catalog.UpsertInput{
		Code:       code,
		Name:       name,
		Price:      decimal.NewFromInt(10),
		Stock:      stock,
		MinStock:   min,
		Unit:       "unidad",
		CategoryID: c.ID,
	})
	require.NoError(t, err)
	return p
}

func TestEvaluate_ClasificaSeveridad(t *testing.T) {
	uc, cat := newFixture(t)
	crearProducto(t, cat, "A-1", "Agotado", 0, 5)
	crearProducto(t, cat, "B-1", "Bajo", 3, 5)
	crearProducto(t, cat, "C-1", "EnElMinimo", 5, 5)
	crearProducto(t, cat, "D-1", "Sano", 50, 5)

	alerts, err := uc.Evaluate(context.Background())
	require.NoError(t, err)

	require.Len(t, alerts, 3)
	assert.Equal(t, "Agotado", alerts[0].Name)
	assert.Equal(t, "critical", alerts[0].Severity)
	assert.Equal(t, "Bajo", alerts[1].Name)
	assert.Equal(t, "warning", alerts[1].Severity)
	assert.Equal(t, "EnElMinimo", alerts[2].Name)
	assert.Equal(t, "warning", alerts[2].Severity, "stock == mínimo es warning")
}

func TestEvaluate_SinEstado(t *testing.T) {
	uc, cat := newFixture(t)
	p := crearProducto(t, cat, "A-1", "Alicate", 2, 5)

	primera, err := uc.Evaluate(context.Background())
	require.NoError(t, err)
	require.Len(t, primera, 1)

	// El stock se recupera: la alerta desaparece sin limpieza explícita.
	_, err = cat.AdjustStock(context.Background(), p.ID, 20)
	require.NoError(t, err)

	segunda, err := uc.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, segunda)
}

func TestEvaluate_MinStockCeroSoloAlertaAgotado(t *testing.T) {
	uc, cat := newFixture(t)
	crearProducto(t, cat, "A-1", "ConUnaUnidad", 1, 0)
	crearProducto(t, cat, "B-1", "Agotado", 0, 0)

	alerts, err := uc.Evaluate(context.Background())
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, "Agotado", alerts[0].Name)
	assert.Equal(t, "critical", alerts[0].Severity)
}

func TestEvaluate_CatalogoVacio(t *testing.T) {
	uc, _ := newFixture(t)

	alerts, err := uc.Evaluate(context.Background())

	require.NoError(t, err)
	assert.Empty(t, alerts)
}
