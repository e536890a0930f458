package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Financeiro-api/internal/domain"
	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
	"github.com/jhoicas/Financeiro-api/internal/domain/repository"
	"github.com/jhoicas/Financeiro-api/internal/infrastructure/memory"
)

func tx(userID string, day int, categoryID int64) *entity.Transaction {
	return &entity.Transaction{
		UserID:      userID,
		Date:        time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Description: "x",
		Amount:      decimal.NewFromInt(10),
		Status:      entity.StatusPaid,
		CategoryID:  categoryID,
	}
}

func TestUsers_EmailUniqueCaseInsensitive(t *testing.T) {
	users := memory.NewStore().Users()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &entity.User{ID: "1", Email: "ana@example.com"}))
	assert.ErrorIs(t, users.Create(ctx, &entity.User{ID: "2", Email: "ANA@example.com"}), domain.ErrEmailAlreadyExists)

	got, err := users.GetByEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.ID)

	missing, err := users.GetByID(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTransactions_ResolveCategory(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	own := &entity.Category{UserID: "a", Name: "Própria", Type: entity.CategoryRevenue}
	require.NoError(t, store.Categories().Create(ctx, own))

	assert.ErrorIs(t, store.Transactions().Create(ctx, tx("b", 1, own.ID)), domain.ErrInvalidInput,
		"categoria de outro usuário equivale a FK inválida")

	created := tx("a", 1, own.ID)
	require.NoError(t, store.Transactions().Create(ctx, created))
	assert.Equal(t, "Própria", created.Category.Name)

	got, err := store.Transactions().GetByID(ctx, "a", created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryRevenue, got.Category.Type)
}

func TestTransactions_OrderAndPeriod(t *testing.T) {
	store := memory.NewStore()
	repo := store.Transactions()
	ctx := context.Background()

	for _, day := range []int{5, 20, 5, 1} {
		require.NoError(t, repo.Create(ctx, tx("a", day, 1)))
	}
	require.NoError(t, repo.Create(ctx, tx("b", 10, 1)))

	all, err := repo.ListPage(ctx, "a", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, 20, all[0].Date.Day())
	assert.Equal(t, int64(3), all[1].ID, "mesma data: id maior primeiro")
	assert.Equal(t, int64(1), all[2].ID)

	inRange, err := repo.ListByPeriod(ctx, "a",
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	beyond, err := repo.ListPage(ctx, "a", 10, 50)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.TxRunner().Run(ctx, func(r repository.TransactionRepository) error {
		require.NoError(t, r.Create(ctx, tx("a", 1, 1)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, _ := store.Transactions().ListPage(ctx, "a", 10, 0)
	assert.Empty(t, list)

	require.NoError(t, store.TxRunner().Run(ctx, func(r repository.TransactionRepository) error {
		return r.Create(ctx, tx("a", 2, 1))
	}))
	list, _ = store.Transactions().ListPage(ctx, "a", 10, 0)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID, "ids reaproveitados após rollback")
}

func TestCategories_SharedAreReadOnly(t *testing.T) {
	cats := memory.NewStore().Categories()
	ctx := context.Background()

	shared, err := cats.GetByID(ctx, "a", 1)
	require.NoError(t, err)
	require.NotNil(t, shared)
	shared.Name = "Alterada"
	shared.UserID = "a"
	assert.ErrorIs(t, cats.Update(ctx, shared), domain.ErrNotFound)
	assert.ErrorIs(t, cats.Delete(ctx, "a", 1), domain.ErrNotFound)
}
