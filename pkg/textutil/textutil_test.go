package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plataforma-app/erp-api/pkg/textutil"
)

func TestFold_QuitaTildesYMinusculas(t *testing.T) {
	casos := []struct{ in, want string }{
		{"Montregión", "montregion"},
		{"ÁÉÍÓÚ", "aeiou"},
		{"Ñandú", "nandu"},
		{"sin tildes", "sin tildes"},
		{"", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, textutil.Fold(c.in), "Fold(%q)", c.in)
	}
}

func TestFold_Idempotente(t *testing.T) {
	una := textutil.Fold("Órden de Producción")
	dos := textutil.Fold(una)
	assert.Equal(t, una, dos, "aplicar Fold dos veces no debe cambiar el resultado")
}
