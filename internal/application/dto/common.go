package dto

// SearchRequest búsqueda paginada por nombre.
type SearchRequest struct {
	Query  string `query:"q"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// DefaultPage aplica valores por defecto y acota el límite.
func (s *SearchRequest) DefaultPage() {
	if s.Limit <= 0 {
		s.Limit = 20
	}
	if s.Limit > 100 {
		s.Limit = 100
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
