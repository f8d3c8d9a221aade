package repository

// ListParams filtros comunes de listado: paginación, estado y búsqueda
// (el término llega ya normalizado por el use case).
type ListParams struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// StatusCount conteo de entidades por estado, para los endpoints /stats.
type StatusCount struct {
	Status string
	Count  int
}
