package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	casos := []struct {
		in   string
		want string
	}{
		{"Categoría", "categoria"},
		{"  CATEGORÍA  ", "categoria"},
		{"Tornillería", "tornilleria"},
		{"ñandú", "nandu"}, // la tilde de la ñ también es marca combinante en NFD
		{"", ""},
		{"  sin cambios  ", "sin cambios"},
	}
	for _, tc := range casos {
		assert.Equal(t, tc.want, Fold(tc.in), "Fold(%q)", tc.in)
	}
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold("Categoría", "categoria"))
	assert.True(t, EqualFold(" Herramientas ", "HERRAMIENTAS"))
	assert.False(t, EqualFold("Pinturas", "Pintura"))
}
