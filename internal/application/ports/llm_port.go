package ports

import "context"

// TextCompletion define el puerto de salida hacia el modelo de lenguaje.
// Cualquier adaptador (Groq, Gemini, mock) debe implementar esta interfaz.
// El núcleo lo trata como una función opaca texto-entra/texto-sale: nunca
// conoce la implementación concreta (DIP).
type TextCompletion interface {
	// Complete envía el prompt de sistema y el mensaje del usuario y devuelve
	// el texto de respuesta. El contexto debe llevar un timeout para evitar
	// bloqueos en llamadas externas.
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
