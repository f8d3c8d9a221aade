package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ListRequest filtros comunes en listados: paginación + estado + búsqueda.
type ListRequest struct {
	PageRequest
	Status string `query:"status"`
	Search string `query:"search"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusCountResponse conteo por estado para los endpoints /stats.
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// StatsResponse respuesta de estadísticas de un módulo.
type StatsResponse struct {
	Total    int                   `json:"total"`
	ByStatus []StatusCountResponse `json:"by_status"`
}
