// Package assistant construye el contexto de inventario para el asistente
// conversacional y orquesta la consulta al modelo de lenguaje, con un modo
// básico local cuando el modelo no está disponible.
package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tu-usuario/ferreteria-api/internal/application/dto"
	"github.com/tu-usuario/ferreteria-api/internal/domain"
	"github.com/tu-usuario/ferreteria-api/internal/domain/repository"
	"github.com/tu-usuario/ferreteria-api/pkg/textutil"
)

// DefaultMaxItems límite de productos en el contexto cuando el llamador no
// especifica uno.
const DefaultMaxItems = 8

// Rangos de coincidencia, de más a menos específico.
const (
	rankCode     = 1 // el código del producto aparece en la consulta
	rankFullName = 2 // el nombre completo aparece en la consulta
	rankCategory = 3 // la categoría del producto coincide con algún término
	rankPartial  = 4 // algún término de la consulta aparece en el nombre
)

// Catalogo es lo que el asistente necesita del catálogo: la proyección
// completa de productos activos con su categoría.
type Catalogo interface {
	ListSummaries(ctx context.Context) ([]repository.ProductSummary, error)
}

// ContextBuilder selecciona del catálogo los productos relevantes a una
// consulta y los serializa en un extracto compacto. El extracto es efímero:
// se construye por consulta y se descarta tras usarse.
type ContextBuilder struct {
	catalogo Catalogo
}

// NewContextBuilder construye el constructor de contexto.
func NewContextBuilder(catalogo Catalogo) *ContextBuilder {
	return &ContextBuilder{catalogo: catalogo}
}

// Build arma el extracto para query con a lo sumo maxItems productos
// (DefaultMaxItems si maxItems <= 0). La relevancia ordena por especificidad
// de coincidencia y, a igualdad, por stock ascendente (primero lo que está
// por agotarse). Si nada coincide, el extracto cae a la lista de stock bajo
// con Fallback en true. Un catálogo caído es UnavailableError.
func (b *ContextBuilder) Build(ctx context.Context, query string, maxItems int) (dto.ContextSnapshot, error) {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	summaries, err := b.catalogo.ListSummaries(ctx)
	if err != nil {
		return dto.ContextSnapshot{}, &domain.UnavailableError{Collaborator: "catalogo", Err: err}
	}

	foldedQuery := textutil.Fold(query)
	terms := queryTerms(foldedQuery)

	type scored struct {
		summary repository.ProductSummary
		rank    int
	}
	var matched []scored
	for _, s := range summaries {
		if rank, ok := rankFor(s, foldedQuery, terms); ok {
			matched = append(matched, scored{summary: s, rank: rank})
		}
	}

	snapshot := dto.ContextSnapshot{}
	if len(matched) == 0 {
		// Sin coincidencias: el extracto más útil es lo que está por agotarse.
		snapshot.Fallback = true
		for _, s := range summaries {
			if s.Stock <= s.MinStock {
				matched = append(matched, scored{summary: s, rank: rankPartial})
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].rank != matched[j].rank {
			return matched[i].rank < matched[j].rank
		}
		if matched[i].summary.Stock != matched[j].summary.Stock {
			return matched[i].summary.Stock < matched[j].summary.Stock
		}
		return matched[i].summary.Name < matched[j].summary.Name
	})
	if len(matched) > maxItems {
		matched = matched[:maxItems]
	}

	for _, m := range matched {
		s := m.summary
		snapshot.Items = append(snapshot.Items, dto.ContextItem{
			ProductID: s.ID,
			Code:      s.Code,
			Name:      s.Name,
			Category:  s.CategoryName,
			Price:     s.Price,
			Stock:     s.Stock,
			MinStock:  s.MinStock,
			Unit:      s.Unit,
			LowStock:  s.Stock <= s.MinStock,
		})
	}
	snapshot.Text = serialize(snapshot.Items)
	return snapshot, nil
}

// rankFor decide si el producto es relevante a la consulta y con qué rango.
func rankFor(s repository.ProductSummary, foldedQuery string, terms []string) (int, bool) {
	name := textutil.Fold(s.Name)
	category := textutil.Fold(s.CategoryName)

	if s.Code != "" && strings.Contains(foldedQuery, textutil.Fold(s.Code)) {
		return rankCode, true
	}
	if name != "" && strings.Contains(foldedQuery, name) {
		return rankFullName, true
	}
	for _, term := range terms {
		if category != "" && (category == term || strings.Contains(category, term) || strings.Contains(term, category)) {
			return rankCategory, true
		}
	}
	nameWords := strings.Fields(name)
	for _, term := range terms {
		if strings.Contains(name, term) {
			return rankPartial, true
		}
		// Tolera plurales y variaciones: "tornillos" debe alcanzar "tornillo".
		for _, w := range nameWords {
			if len([]rune(w)) >= 3 && (strings.Contains(term, w) || strings.Contains(w, term)) {
				return rankPartial, true
			}
		}
	}
	return 0, false
}

// queryTerms extrae los términos útiles de la consulta plegada: palabras de
// al menos 3 runas, para descartar artículos y preposiciones cortas.
func queryTerms(foldedQuery string) []string {
	var terms []string
	for _, w := range strings.Fields(foldedQuery) {
		w = strings.Trim(w, ".,;:¿?¡!\"'()")
		if len([]rune(w)) >= 3 {
			terms = append(terms, w)
		}
	}
	return terms
}

// serialize produce el texto compacto que acompaña al prompt, una línea por
// producto.
func serialize(items []dto.ContextItem) string {
	if len(items) == 0 {
		return "No hay productos que mostrar."
	}
	var sb strings.Builder
	for i, it := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		if it.Code != "" {
			sb.WriteString(it.Code)
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s (%s): $%s por %s, stock %d",
			it.Name, it.Category, it.Price.StringFixed(2), it.Unit, it.Stock)
		if it.LowStock {
			fmt.Fprintf(&sb, " (BAJO, mínimo %d)", it.MinStock)
		}
	}
	return sb.String()
}
