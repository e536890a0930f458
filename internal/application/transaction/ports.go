package transaction

import (
	"context"

	"github.com/jhoicas/Financeiro-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação de BD, com um repositório atado a ela.
// Garante que uma importação em lote grava todas as linhas ou nenhuma.
type TxRunner interface {
	Run(ctx context.Context, fn func(txRepo repository.TransactionRepository) error) error
}
