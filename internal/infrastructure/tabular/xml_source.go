package tabular

import (
	"context"
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/tu-usuario/ferreteria-api/internal/application/ports"
)

// Verificar en tiempo de compilación que XMLSource implementa TabularSource.
var _ ports.TabularSource = (*XMLSource)(nil)

// xmlColumns traduce las etiquetas XML (minúsculas, sin diacríticos) a los
// nombres de columna que el conciliador reconoce.
var xmlColumns = map[string]string{
	"nombre":       "Nombre",
	"categoria":    "Categoría",
	"precio":       "Precio",
	"stock":        "Stock",
	"unidad":       "Unidad",
	"codigo":       "Código",
	"stock_minimo": "Stock Mínimo",
	"marca":        "Marca",
	"ubicacion":    "Ubicación",
	"descripcion":  "Descripción",
}

// XMLSource lee un documento con un elemento <producto> por fila:
//
//	<productos>
//	  <producto>
//	    <codigo>TRN-001</codigo>
//	    <nombre>Tornillo 3/8</nombre>
//	    ...
//	  </producto>
//	</productos>
//
// Las etiquetas no reconocidas se ignoran.
type XMLSource struct {
	reader io.Reader
}

// NewXMLSource construye la fuente sobre el contenido del documento.
func NewXMLSource(r io.Reader) *XMLSource {
	return &XMLSource{reader: r}
}

// Rows materializa todas las filas de datos, numeradas desde 1.
func (s *XMLSource) Rows(ctx context.Context) ([]ports.Row, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(s.reader); err != nil {
		return nil, fmt.Errorf("xml: parsear documento: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("xml: documento sin elemento raíz")
	}

	var rows []ports.Row
	for i, el := range root.SelectElements("producto") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values := make(map[string]string)
		for _, child := range el.ChildElements() {
			if col, ok := xmlColumns[child.Tag]; ok {
				values[col] = child.Text()
			}
		}
		rows = append(rows, ports.Row{Index: i + 1, Values: values})
	}
	return rows, nil
}
