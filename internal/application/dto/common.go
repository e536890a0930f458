package dto

// DefaultPageSize tamanho fixo das páginas de listagem (rolagem infinita do front).
const DefaultPageSize = 20

// PageRequest paginação por número de página (1-based).
type PageRequest struct {
	Page int `query:"page"`
}

// Normalize aplica o valor padrão quando Page não é positivo.
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
}

// Offset deslocamento correspondente à página atual.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * DefaultPageSize
}

// PageResponse metadados de página nas respostas.
type PageResponse struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"has_more"`
}

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
