package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status observados nos lançamentos. O campo é texto livre; estes são os valores conhecidos.
const (
	StatusPaid      = "pago"
	StatusPending   = "pendente"
	StatusCancelled = "cancelado"
	StatusReceived  = "recebido"
)

// AmountDecimals casas decimais da coluna amount (NUMERIC(14,2)).
const AmountDecimals = 2

var statusAliases = map[string]string{
	"paid":      StatusPaid,
	"pending":   StatusPending,
	"cancelled": StatusCancelled,
	"canceled":  StatusCancelled,
	"received":  StatusReceived,
}

// NormalizeStatus devolve o status em minúsculas e sem espaços nas pontas.
// Sinônimos em inglês dos valores conhecidos são convertidos; o resto passa como está.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if known, ok := statusAliases[s]; ok {
		return known
	}
	return s
}

// FitsAmountScale informa se d cabe em AmountDecimals casas sem arredondar.
func FitsAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(AmountDecimals))
}

// Transaction representa um lançamento de receita ou despesa.
//
// Amount é sempre uma magnitude não negativa; a direção vem de Category.Type.
// Category chega sempre resolvida (ou Uncategorized) da camada de persistência.
type Transaction struct {
	ID            int64
	UserID        string
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	Status        string
	PaymentMethod *string
	CategoryID    int64
	Category      Category
	CreatedAt     time.Time
}

// IsRevenue informa se o lançamento entra como receita.
func (t Transaction) IsRevenue() bool { return t.Category.Type == CategoryRevenue }

// IsExpense informa se o lançamento entra como despesa.
func (t Transaction) IsExpense() bool { return t.Category.Type == CategoryExpense }
