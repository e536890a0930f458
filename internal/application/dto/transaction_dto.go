package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRef categoria embutida num lançamento.
type CategoryRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

// TransactionResponse saída de um lançamento.
type TransactionResponse struct {
	ID            int64           `json:"id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PaymentMethod *string         `json:"payment_method"`
	Category      CategoryRef     `json:"category"`
}

// TransactionListResponse lista paginada de lançamentos.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// InsertTransactionRequest linha de inserção em lote (formulário ou planilha).
// A categoria é resolvida pelo nome; sem correspondência cai na categoria padrão.
type InsertTransactionRequest struct {
	Date         string          `json:"date" validate:"required"`
	Description  string          `json:"description" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryName string          `json:"category_name"`
	CategoryID   *int64          `json:"category_id"`
	Status       string          `json:"status" validate:"required"`
}

// BatchInsertRequest corpo de POST /api/transactions/batch.
type BatchInsertRequest struct {
	Transactions []InsertTransactionRequest `json:"transactions"`
}

// BatchInsertResponse quantidade de lançamentos gravados.
type BatchInsertResponse struct {
	Inserted int `json:"inserted"`
}

// EditTransactionRequest edição completa de um lançamento.
type EditTransactionRequest struct {
	Date          string          `json:"date" validate:"required"`
	Description   string          `json:"description" validate:"required"`
	CategoryID    int64           `json:"category_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status" validate:"required"`
	PaymentMethod *string         `json:"payment_method"`
}
