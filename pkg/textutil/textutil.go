// Package textutil normaliza texto en español para comparaciones:
// minúsculas, sin espacios circundantes y sin diacríticos, de modo que
// "Categoría", "categoria" y " CATEGORÍA " se traten como iguales.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas, recortada y sin marcas diacríticas.
func Fold(s string) string {
	// El transformer encadenado mantiene estado interno: construirlo por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// EqualFold compara dos cadenas bajo Fold.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
