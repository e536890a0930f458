package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/Financeiro-api/internal/application/dto"
)

// BatchInserter grava as linhas lidas (implementado por transaction.UseCase).
type BatchInserter interface {
	InsertBatch(ctx context.Context, userID string, rows []dto.InsertTransactionRequest) (int, error)
}

// UseCase pré-visualização e importação de planilhas.
type UseCase struct {
	inserter BatchInserter
}

// NewUseCase constrói o caso de uso.
func NewUseCase(inserter BatchInserter) *UseCase {
	return &UseCase{inserter: inserter}
}

// Preview lê a planilha e devolve as linhas sem gravar nada.
func (uc *UseCase) Preview(filename string, r io.Reader) (*dto.ImportPreviewResponse, error) {
	rows, err := Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return &dto.ImportPreviewResponse{Rows: rows, Count: len(rows)}, nil
}

// Import lê a planilha e grava todas as linhas numa única transação.
// Qualquer linha inválida cancela a importação inteira.
func (uc *UseCase) Import(ctx context.Context, userID, filename string, r io.Reader) (*dto.ImportResultResponse, error) {
	rows, err := Parse(filename, r)
	if err != nil {
		return nil, err
	}
	n, err := uc.inserter.InsertBatch(ctx, userID, rows)
	if err != nil {
		return nil, fmt.Errorf("importar %s: %w", filename, err)
	}
	return &dto.ImportResultResponse{Inserted: n}, nil
}
