package postgres

// Tablas de plegado de acentos para los predicados de búsqueda. Espejo
// carácter a carácter de lo que textutil.Fold hace con el término del lado
// de la aplicación: ambos lados del LIKE quedan en minúsculas y sin
// diacríticos, así "rápido" y "rapido" encuentran la misma fila.
const (
	foldFrom = "áéíóúàèìòùäëïöüâêîôûãõñçý"
	foldTo   = "aeiouaeiouaeiouaeiouaoncy"
)

// foldExpr expresión SQL que pliega una columna a minúsculas sin acentos,
// para comparar contra términos ya plegados con textutil.Fold.
func foldExpr(column string) string {
	return "translate(lower(" + column + "), '" + foldFrom + "', '" + foldTo + "')"
}
