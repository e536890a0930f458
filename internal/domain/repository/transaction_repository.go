package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
)

// TransactionRepository define a porta de persistência para lançamentos.
// Toda operação é escopada ao userID: um usuário nunca lê nem altera linhas de outro.
type TransactionRepository interface {
	// ListByPeriod devolve os lançamentos com data em [start, end], do mais recente ao mais antigo.
	ListByPeriod(ctx context.Context, userID string, start, end time.Time) ([]entity.Transaction, error)
	// ListPage devolve uma página de lançamentos, do mais recente ao mais antigo.
	ListPage(ctx context.Context, userID string, limit, offset int) ([]entity.Transaction, error)
	// GetByID devolve (nil, nil) se o lançamento não existir para o usuário.
	GetByID(ctx context.Context, userID string, id int64) (*entity.Transaction, error)
	Create(ctx context.Context, t *entity.Transaction) error
	// Update e Delete devolvem domain.ErrNotFound se nenhuma linha for afetada.
	Update(ctx context.Context, t *entity.Transaction) error
	Delete(ctx context.Context, userID string, id int64) error
}
