package entity

import "time"

// CategoryType classifica a direção do fluxo de caixa de uma categoria.
type CategoryType string

const (
	CategoryRevenue CategoryType = "receita"
	CategoryExpense CategoryType = "despesa"
)

// Valid informa se o tipo é receita ou despesa.
func (t CategoryType) Valid() bool {
	return t == CategoryRevenue || t == CategoryExpense
}

// DefaultCategoryColor cor usada quando a categoria não define uma.
const DefaultCategoryColor = "#ccc"

// Category agrupa lançamentos. UserID vazio indica categoria padrão compartilhada.
type Category struct {
	ID        int64
	UserID    string
	Name      string
	Color     string
	Icon      string
	Type      CategoryType
	CreatedAt time.Time
}

// Uncategorized é o placeholder atribuído a lançamentos sem categoria resolvível.
func Uncategorized() Category {
	return Category{
		ID:    0,
		Name:  "Sem categoria",
		Color: DefaultCategoryColor,
		Type:  CategoryExpense,
	}
}
