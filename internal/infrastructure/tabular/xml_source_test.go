package tabular

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXMLSource_LeeProductos(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<productos>
  <producto>
    <codigo>TRN-001</codigo>
    <nombre>Tornillo 3/8</nombre>
    <categoria>Tornillería</categoria>
    <precio>0.50</precio>
    <stock>100</stock>
    <stock_minimo>20</stock_minimo>
    <unidad>unidad</unidad>
    <marca>Acme</marca>
  </producto>
  <producto>
    <nombre>Martillo</nombre>
    <categoria>Herramientas</categoria>
    <precio>12.00</precio>
    <stock>8</stock>
    <unidad>unidad</unidad>
  </producto>
</productos>`

	rows, err := NewXMLSource(strings.NewReader(doc)).Rows(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, "Tornillo 3/8", rows[0].Values["Nombre"])
	assert.Equal(t, "Tornillería", rows[0].Values["Categoría"])
	assert.Equal(t, "20", rows[0].Values["Stock Mínimo"])
	assert.Equal(t, "Acme", rows[0].Values["Marca"])

	assert.Equal(t, 2, rows[1].Index)
	_, hasCode := rows[1].Values["Código"]
	assert.False(t, hasCode, "etiquetas ausentes no aparecen en el mapa")
}

func TestXMLSource_IgnoraEtiquetasDesconocidas(t *testing.T) {
	doc := `<productos>
  <producto>
    <nombre>Brocha</nombre>
    <color>rojo</color>
  </producto>
</productos>`

	rows, err := NewXMLSource(strings.NewReader(doc)).Rows(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Brocha", rows[0].Values["Nombre"])
	_, hasColor := rows[0].Values["color"]
	assert.False(t, hasColor)
}

func TestXMLSource_DocumentoInvalido(t *testing.T) {
	_, err := NewXMLSource(strings.NewReader("<productos>")).Rows(context.Background())
	assert.Error(t, err)
}
