package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plataforma-app/erp-api/pkg/textutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Plegado de acentos en los predicados de búsqueda
// ──────────────────────────────────────────────────────────────────────────────

// Las tablas foldFrom/foldTo deben plegar exactamente igual que textutil.Fold:
// si divergen, una fila con acentos deja de ser localizable desde la búsqueda.
func TestFoldTables_EspejanTextutilFold(t *testing.T) {
	from := []rune(foldFrom)
	to := []rune(foldTo)
	require.Len(t, to, len(from), "las tablas de translate deben tener la misma longitud")

	for i, r := range from {
		assert.Equal(t, string(to[i]), textutil.Fold(string(r)),
			"el carácter %q debe plegarse igual en SQL y en la aplicación", r)
	}
}

func TestFoldExpr_PliegaMinusculasYAcentos(t *testing.T) {
	expr := foldExpr("name")
	assert.Equal(t, "translate(lower(name), '"+foldFrom+"', '"+foldTo+"')", expr)
}
