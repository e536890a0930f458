package dto

import "time"

// CreateCategoryRequest entrada para criar uma categoria.
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Type  string `json:"type" validate:"required,oneof=receita despesa"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// UpdateCategoryRequest entrada para atualizar uma categoria.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Type  *string `json:"type" validate:"omitempty,oneof=receita despesa"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// CategoryResponse saída de uma categoria. Shared indica categoria padrão (somente leitura).
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon,omitempty"`
	Type      string    `json:"type"`
	Shared    bool      `json:"shared"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryListResponse lista paginada de categorias.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
