// Package tabular contiene las fuentes de filas para la importación: Excel
// (.xlsx) y XML. Cada fuente normaliza su formato al puerto TabularSource;
// la validación de contenido es del conciliador, no de la fuente.
package tabular

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/ferreteria-api/internal/application/ports"
)

// Verificar en tiempo de compilación que ExcelSource implementa TabularSource.
var _ ports.TabularSource = (*ExcelSource)(nil)

// ExcelSource lee la primera hoja de un .xlsx. La primera fila es la
// cabecera con los nombres de columna; las demás son datos, numeradas desde
// 1 para que los rechazos se reporten en términos del archivo.
type ExcelSource struct {
	reader io.Reader
}

// NewExcelSource construye la fuente sobre el contenido del archivo.
func NewExcelSource(r io.Reader) *ExcelSource {
	return &ExcelSource{reader: r}
}

// Rows materializa todas las filas de datos.
func (s *ExcelSource) Rows(ctx context.Context) ([]ports.Row, error) {
	f, err := excelize.OpenReader(s.reader)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir archivo: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel: el archivo no tiene hojas")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excel: leer hoja %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("excel: la hoja %q está vacía", sheets[0])
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = strings.TrimSpace(h)
	}

	var rows []ports.Row
	for i, cells := range raw[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values := make(map[string]string, len(header))
		for j, col := range header {
			if col == "" {
				continue
			}
			if j < len(cells) {
				values[col] = strings.TrimSpace(cells[j])
			} else {
				values[col] = ""
			}
		}
		rows = append(rows, ports.Row{Index: i + 1, Values: values})
	}
	return rows, nil
}
