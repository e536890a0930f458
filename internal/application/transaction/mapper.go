package transaction

import (
	"github.com/jhoicas/Financeiro-api/internal/application/dto"
	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
)

// ToResponse converte o lançamento para o formato da API.
func ToResponse(t entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:            t.ID,
		Date:          t.Date,
		Description:   t.Description,
		Amount:        t.Amount,
		Status:        t.Status,
		PaymentMethod: t.PaymentMethod,
		Category: dto.CategoryRef{
			ID:    t.Category.ID,
			Name:  t.Category.Name,
			Color: t.Category.Color,
			Type:  string(t.Category.Type),
		},
	}
}

// ToResponses converte uma lista preservando a ordem; nunca devolve nil.
func ToResponses(list []entity.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToResponse(t))
	}
	return out
}
