package dto

// RowRejection describe una fila rechazada del lote: índice (base 1), campo
// ofensivo, valor crudo y motivo ("MissingField(Nombre)", "TypeError(Precio)",
// "ValidationError(Precio)", "ConflictError(Código)").
type RowRejection struct {
	Row    int    `json:"row"`
	Field  string `json:"field,omitempty"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

// ImportReport es la única salida observable de una importación: conteos y
// rechazos por fila, para que la capa de presentación rinda un resultado
// específico y accionable.
type ImportReport struct {
	Total      int            `json:"total"`
	Created    int            `json:"created"`
	Updated    int            `json:"updated"`
	Rejected   int            `json:"rejected"`
	Rejections []RowRejection `json:"rejections,omitempty"`
}

// ImportErrorResponse acompaña un lote interrumpido con su reporte parcial:
// las filas ya aplicadas quedan y el reporte es la única evidencia de cuáles.
type ImportErrorResponse struct {
	Error  ErrorResponse `json:"error"`
	Report *ImportReport `json:"report"`
}

// RejectionByRow devuelve el motivo de rechazo de una fila, si existe.
func (r *ImportReport) RejectionByRow(row int) (RowRejection, bool) {
	for _, rej := range r.Rejections {
		if rej.Row == row {
			return rej, true
		}
	}
	return RowRejection{}, false
}
