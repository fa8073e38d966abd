package ports

import "context"

// Row es una fila cruda de una fuente tabular: índice de fila (base 1, en el
// orden del lote) y valores por nombre de columna. Los nombres de columna
// llegan ya sin espacios circundantes.
type Row struct {
	Index  int
	Values map[string]string
}

// TabularSource define el puerto de entrada para lotes de importación
// (Excel, XML de proveedor, stand-ins de prueba). Devuelve las filas en el
// orden del documento.
type TabularSource interface {
	Rows(ctx context.Context) ([]Row, error)
}
