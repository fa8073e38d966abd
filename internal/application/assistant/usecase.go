package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tu-usuario/ferreteria-api/internal/application/dto"
	"github.com/tu-usuario/ferreteria-api/internal/application/ports"
	"github.com/tu-usuario/ferreteria-api/internal/domain"
	"github.com/tu-usuario/ferreteria-api/pkg/logger"
	"github.com/tu-usuario/ferreteria-api/pkg/textutil"
)

// llmTimeout tope para la llamada al modelo externo.
const llmTimeout = 10 * time.Second

const systemPrompt = `Eres el asistente de una ferretería. Respondes en español, ` +
	`breve y directo, usando únicamente el contexto de inventario que acompaña ` +
	`cada consulta. Si el contexto no contiene lo que el cliente busca, dilo ` +
	`con claridad y sugiere alternativas del contexto. Nunca inventes precios ` +
	`ni existencias.`

// AskUseCase responde preguntas sobre el inventario. Con un modelo de
// lenguaje configurado arma el contexto y delega la redacción; sin modelo, o
// si el modelo falla, responde en modo básico con el mismo contexto.
type AskUseCase struct {
	builder *ContextBuilder
	llm     ports.TextCompletion // nil deshabilita el modo LLM
	log     *logger.Logger
}

// NewAskUseCase construye el caso de uso del asistente. llm puede ser nil.
func NewAskUseCase(builder *ContextBuilder, llm ports.TextCompletion, log *logger.Logger) *AskUseCase {
	return &AskUseCase{builder: builder, llm: llm, log: log}
}

// Ask construye el contexto para la pregunta y produce la respuesta.
// Un catálogo caído se propaga como UnavailableError: sin contexto fiable no
// hay respuesta. Un LLM caído degrada a modo básico, nunca a error.
func (uc *AskUseCase) Ask(ctx context.Context, req dto.AskRequest) (*dto.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, domain.NewValidationError("question", "", "no puede estar vacía")
	}

	snapshot, err := uc.builder.Build(ctx, question, req.MaxItems)
	if err != nil {
		return nil, err
	}

	if uc.llm != nil {
		answer, err := uc.complete(ctx, question, snapshot)
		if err == nil {
			return &dto.AskResponse{Answer: answer, Source: "llm", Context: snapshot}, nil
		}
		uc.log.Warn().Err(err).Msg("modelo de lenguaje no disponible, usando modo básico")
	}

	return &dto.AskResponse{
		Answer:  uc.basicAnswer(question, snapshot),
		Source:  "basico",
		Context: snapshot,
	}, nil
}

func (uc *AskUseCase) complete(ctx context.Context, question string, snapshot dto.ContextSnapshot) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	userMessage := fmt.Sprintf("[Contexto del inventario:\n%s]\n\nCliente: %s", snapshot.Text, question)
	answer, err := uc.llm.Complete(ctx, systemPrompt, userMessage)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("respuesta vacía del modelo")
	}
	return answer, nil
}

// basicAnswer responde sin modelo: reconoce las preguntas frecuentes del
// mostrador y, para el resto, presenta los productos del contexto.
func (uc *AskUseCase) basicAnswer(question string, snapshot dto.ContextSnapshot) string {
	folded := textutil.Fold(question)

	switch {
	case strings.Contains(folded, "stock bajo") || strings.Contains(folded, "agotado") || strings.Contains(folded, "por agotar"):
		low := lowStockLines(snapshot.Items)
		if len(low) == 0 {
			return "No hay productos con stock bajo en este momento."
		}
		return "Productos con stock bajo:\n" + strings.Join(low, "\n")

	case strings.Contains(folded, "categor"):
		cats := distinctCategories(snapshot.Items)
		if len(cats) == 0 {
			return "No encontré categorías para esa consulta."
		}
		return "Categorías disponibles: " + strings.Join(cats, ", ") + "."

	case len(snapshot.Items) == 0:
		return "No encontré productos que coincidan con tu consulta."

	case snapshot.Fallback:
		return "No encontré productos que coincidan con tu consulta. " +
			"Estos son los que están por agotarse:\n" + snapshot.Text

	default:
		return "Esto es lo que encontré en el inventario:\n" + snapshot.Text
	}
}

func lowStockLines(items []dto.ContextItem) []string {
	var out []string
	for _, it := range items {
		if it.LowStock {
			out = append(out, fmt.Sprintf("- %s: %d %s (mínimo %d)", it.Name, it.Stock, it.Unit, it.MinStock))
		}
	}
	return out
}

func distinctCategories(items []dto.ContextItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		out = append(out, it.Category)
	}
	sort.Strings(out)
	return out
}
