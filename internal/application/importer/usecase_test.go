package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Financeiro-api/internal/application/dto"
	"github.com/jhoicas/Financeiro-api/internal/application/importer"
)

type fakeInserter struct {
	userID string
	rows   []dto.InsertTransactionRequest
	err    error
}

func (f *fakeInserter) InsertBatch(_ context.Context, userID string, rows []dto.InsertTransactionRequest) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.userID, f.rows = userID, rows
	return len(rows), nil
}

const sheet = "description;amount;date;category_name;status\n" +
	"Venda;100,00;2024-01-10;Vendas;pago\n" +
	"Gasolina;80,00;2024-01-11;Transporte;pago\n"

func TestPreview_DoesNotInsert(t *testing.T) {
	ins := &fakeInserter{}
	uc := importer.NewUseCase(ins)

	res, err := uc.Preview("jan.csv", strings.NewReader(sheet))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Len(t, res.Rows, 2)
	assert.Nil(t, ins.rows)
}

func TestImport(t *testing.T) {
	ins := &fakeInserter{}
	uc := importer.NewUseCase(ins)

	res, err := uc.Import(context.Background(), "user-a", "jan.csv", strings.NewReader(sheet))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, "user-a", ins.userID)
	assert.Equal(t, "Gasolina", ins.rows[1].Description)
}

func TestImport_ParseErrorSkipsInsert(t *testing.T) {
	ins := &fakeInserter{}
	uc := importer.NewUseCase(ins)

	_, err := uc.Import(context.Background(), "user-a", "jan.csv", strings.NewReader("description\nx\n"))
	var missing *importer.MissingColumnsError
	assert.True(t, errors.As(err, &missing))
	assert.Nil(t, ins.rows)
}

func TestImport_InsertError(t *testing.T) {
	boom := errors.New("falha no banco")
	uc := importer.NewUseCase(&fakeInserter{err: boom})

	_, err := uc.Import(context.Background(), "user-a", "jan.csv", strings.NewReader(sheet))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "jan.csv")
}
