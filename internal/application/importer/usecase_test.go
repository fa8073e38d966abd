package importer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/ferreteria-api/internal/application/apptest"
	"github.com/tu-usuario/ferreteria-api/internal/application/catalog"
	"github.com/tu-usuario/ferreteria-api/internal/application/ports"
	"github.com/tu-usuario/ferreteria-api/pkg/logger"
)

// fuente en memoria
type memSource struct {
	rows []ports.Row
	err  error
}

func (s *memSource) Rows(ctx context.Context) ([]ports.Row, error) {
	return s.rows, s.err
}

func fila(index int, overrides map[string]string) ports.Row {
	values := map[string]string{
		ColNombre:    fmt.Sprintf("Producto %d", index),
		ColCategoria: "Herramientas",
		ColPrecio:    "10.50",
		ColStock:     "25",
		ColUnidad:    "unidad",
	}
	for k, v := range overrides {
		values[k] = v
	}
	return ports.Row{Index: index, Values: values}
}

func newImporter(t *testing.T) (*UseCase, *catalog.UseCase, *apptest.ProductRepo) {
	t.Helper()
	products := apptest.NewProductRepo()
	categories := apptest.NewCategoryRepo()
	tx := &apptest.TxRunner{Products: products, Categories: categories}
	cat := catalog.NewUseCase(tx, products, categories)
	return NewUseCase(cat, logger.Nop()), cat, products
}

func TestImport_LoteConFilasInvalidas(t *testing.T) {
	uc, _, products := newImporter(t)

	var rows []ports.Row
	for i := 1; i <= 10; i++ {
		rows = append(rows, fila(i, nil))
	}
	rows[3] = fila(4, map[string]string{ColNombre: ""})      // fila 4 sin nombre
	rows[6] = fila(7, map[string]string{ColPrecio: "-3.00"}) // fila 7 precio negativo

	report, err := uc.Import(context.Background(), &memSource{rows: rows})
	require.NoError(t, err)

	assert.Equal(t, 10, report.Total)
	assert.Equal(t, 8, report.Created)
	assert.Equal(t, 2, report.Rejected)

	rej4, ok := report.RejectionByRow(4)
	require.True(t, ok)
	assert.Equal(t, "MissingField(Nombre)", rej4.Reason)

	rej7, ok := report.RejectionByRow(7)
	require.True(t, ok)
	assert.Equal(t, "ValidationError(Precio)", rej7.Reason)

	list, err := products.List(0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 8, "las filas válidas persisten pese a los rechazos")
}

func TestImport_PrecioNoNumericoEsTypeError(t *testing.T) {
	uc, _, _ := newImporter(t)

	rows := []ports.Row{fila(1, map[string]string{ColPrecio: "abc"})}
	report, err := uc.Import(context.Background(), &memSource{rows: rows})
	require.NoError(t, err)

	require.Equal(t, 1, report.Rejected)
	assert.Equal(t, "TypeError(Precio)", report.Rejections[0].Reason)
	assert.Equal(t, "abc", report.Rejections[0].Value)
}

func TestImport_StockNoEnteroEsTypeError(t *testing.T) {
	uc, _, _ := newImporter(t)

	rows := []ports.Row{fila(1, map[string]string{ColStock: "mucho"})}
	report, err := uc.Import(context.Background(), &memSource{rows: rows})
	require.NoError(t, err)

	require.Equal(t, 1, report.Rejected)
	assert.Equal(t, "TypeError(Stock)", report.Rejections[0].Reason)
}

func TestImport_ReimportarEsIdempotente(t *testing.T) {
	uc, _, products := newImporter(t)

	rows := []ports.Row{
		fila(1, map[string]string{ColCodigo: "A-1", ColStock: "10"}),
		fila(2, map[string]string{ColCodigo: "B-2", ColStock: "20"}),
	}

	first, err := uc.Import(context.Background(), &memSource{rows: rows})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 0, first.Updated)

	second, err := uc.Import(context.Background(), &memSource{rows: rows})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated, "mismo código: actualiza, no duplica")

	list, err := products.List(0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestImport_CodigoRepetidoEnLoteUltimaFilaGana(t *testing.T) {
	uc, cat, _ := newImporter(t)

	rows := []ports.Row{
		fila(1, map[string]string{ColCodigo: "X-9", ColNombre: "Martillo chico", ColStock: "5"}),
		fila(2, map[string]string{ColCodigo: "X-9", ColNombre: "Martillo grande", ColStock: "7"}),
	}

	report, err := uc.Import(context.Background(), &memSource{rows: rows})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Updated)

	p, err := cat.FindProduct(context.Background(), "X-9")
	require.NoError(t, err)
	assert.Equal(t, "Martillo grande", p.Name)
	assert.Equal(t, 7, p.Stock)
}

func TestImport_ColisionConExistenteEsConflictError(t *testing.T) {
	uc, cat, _ := newImporter(t)

	// Producto previo con el mismo código pero otra identidad.
	_, err := uc.Import(context.Background(), &memSource{rows: []ports.Row{
		fila(1, map[string]string{ColCodigo: "Z-1", ColNombre: "Lija fina", ColCategoria: "Abrasivos"}),
	}})
	require.NoError(t, err)

	report, err := uc.Import(context.Background(), &memSource{rows: []ports.Row{
		fila(1, map[string]string{ColCodigo: "Z-1", ColNombre: "Destornillador", ColCategoria: "Herramientas"}),
	}})
	require.NoError(t, err)

	require.Equal(t, 1, report.Rejected)
	assert.Equal(t, "ConflictError(Código)", report.Rejections[0].Reason)

	p, err := cat.FindProduct(context.Background(), "Z-1")
	require.NoError(t, err)
	assert.Equal(t, "Lija fina", p.Name, "el existente queda intacto")
}

func TestImport_StockMinimoOpcionalPorDefectoCero(t *testing.T) {
	uc, cat, _ := newImporter(t)

	rows := []ports.Row{
		fila(1, map[string]string{ColCodigo: "M-1"}),
		fila(2, map[string]string{ColCodigo: "M-2", ColStockMinimo: "15"}),
	}
	_, err := uc.Import(context.Background(), &memSource{rows: rows})
	require.NoError(t, err)

	p1, err := cat.FindProduct(context.Background(), "M-1")
	require.NoError(t, err)
	assert.Equal(t, 0, p1.MinStock)

	p2, err := cat.FindProduct(context.Background(), "M-2")
	require.NoError(t, err)
	assert.Equal(t, 15, p2.MinStock)
}

func TestImport_CategoriasSeReusanPorNombrePlegado(t *testing.T) {
	uc, cat, _ := newImporter(t)

	rows := []ports.Row{
		fila(1, map[string]string{ColCategoria: "Pinturas"}),
		fila(2, map[string]string{ColCategoria: "PINTURAS"}),
		fila(3, map[string]string{ColCategoria: " pinturas "}),
		fila(4, map[string]string{ColCategoria: "Tornillería"}),
		fila(5, map[string]string{ColCategoria: "Tornilleria"}),
	}
	_, err := uc.Import(context.Background(), &memSource{rows: rows})
	require.NoError(t, err)

	cats, err := cat.ListCategories()
	require.NoError(t, err)
	assert.Len(t, cats, 2, "mayúsculas y acentos no distinguen categorías")

	// Otro lote: la caché en memoria ya no aplica y la reutilización
	// depende del almacén.
	_, err = uc.Import(context.Background(), &memSource{rows: []ports.Row{
		fila(1, map[string]string{ColCategoria: "TORNILLERIA"}),
	}})
	require.NoError(t, err)

	cats, err = cat.ListCategories()
	require.NoError(t, err)
	assert.Len(t, cats, 2, "entre lotes la identidad plegada también reúsa")
}

func TestImport_ContextoCanceladoDetieneElLote(t *testing.T) {
	uc, _, _ := newImporter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := []ports.Row{fila(1, nil)}
	report, err := uc.Import(ctx, &memSource{rows: rows})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.Created)
}
