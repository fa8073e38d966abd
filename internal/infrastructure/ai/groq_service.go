// Package ai contiene los adaptadores hacia modelos de lenguaje. Usan
// únicamente la librería estándar (net/http) para no añadir dependencias
// externas: el puerto es texto-entra/texto-sale y un cliente HTTP basta.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tu-usuario/ferreteria-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GroqService implementa TextCompletion.
var _ ports.TextCompletion = (*GroqService)(nil)

const groqChatURL = "https://api.groq.com/openai/v1/chat/completions"

// GroqService adaptador que implementa TextCompletion contra la API de Groq
// (compatible con el formato chat de OpenAI).
type GroqService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGroqService construye el adaptador. model suele ser "llama-3.1-8b-instant".
func NewGroqService(apiKey, model string) *GroqService {
	return &GroqService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Groq ─────────────────────────────────

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Complete envía el prompt de sistema y el mensaje del usuario y devuelve el
// texto de la primera elección.
func (s *GroqService) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GROQ_API_KEY no configurado")
	}

	payload := groqRequest{
		Model: s.model,
		Messages: []groqMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: 0.3,
		MaxTokens:   512,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqChatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp groqResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Groq %s: %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Groq HTTP %d", resp.StatusCode)
	}

	var chatResp groqResponse
	if err := json.Unmarshal(rawBody, &chatResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Groq: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("AI: Groq devolvió respuesta vacía")
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
