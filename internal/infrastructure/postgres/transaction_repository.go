package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Financeiro-api/internal/domain"
	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
	"github.com/jhoicas/Financeiro-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementação do porto TransactionRepository sobre PostgreSQL.
// Toda consulta filtra por user_id.
type TransactionRepo struct {
	db Querier
}

// NewTransactionRepository constrói o adaptador; db pode ser o pool ou uma pgx.Tx.
func NewTransactionRepository(db Querier) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// LEFT JOIN: um lançamento cuja categoria sumiu continua listado como "Sem categoria".
const transactionSelect = `
	SELECT t.id, t.user_id::text, t.date, t.description, t.amount, t.status, t.payment_method,
	       t.category_id, c.id, c.name, c.color, c.type
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id`

// ListByPeriod lançamentos com data em [start, end], do mais recente ao mais antigo.
func (r *TransactionRepo) ListByPeriod(ctx context.Context, userID string, start, end time.Time) ([]entity.Transaction, error) {
	query := transactionSelect + `
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date DESC, t.id DESC`
	rows, err := r.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("transactions.ListByPeriod: %w", err)
	}
	return scanTransactions(rows)
}

// ListPage uma página de lançamentos, do mais recente ao mais antigo.
func (r *TransactionRepo) ListPage(ctx context.Context, userID string, limit, offset int) ([]entity.Transaction, error) {
	query := transactionSelect + `
		WHERE t.user_id = $1
		ORDER BY t.date DESC, t.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("transactions.ListPage: %w", err)
	}
	return scanTransactions(rows)
}

// GetByID devolve (nil, nil) se o lançamento não existir para o usuário.
func (r *TransactionRepo) GetByID(ctx context.Context, userID string, id int64) (*entity.Transaction, error) {
	query := transactionSelect + ` WHERE t.user_id = $1 AND t.id = $2`
	t, err := scanTransaction(r.db.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("transactions.GetByID: %w", err)
	}
	return &t, nil
}

// Create insere o lançamento e preenche t.ID.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, date, description, amount, status, payment_method, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		t.UserID, t.Date, t.Description, t.Amount, t.Status, t.PaymentMethod, t.CategoryID, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoria %d inexistente", domain.ErrInvalidInput, t.CategoryID)
		}
		return fmt.Errorf("transactions.Create: %w", err)
	}
	return nil
}

// Update regrava os campos editáveis do lançamento do usuário.
func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	query := `
		UPDATE transactions
		SET date = $3, description = $4, amount = $5, status = $6, payment_method = $7, category_id = $8
		WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query,
		t.ID, t.UserID, t.Date, t.Description, t.Amount, t.Status, t.PaymentMethod, t.CategoryID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoria %d inexistente", domain.ErrInvalidInput, t.CategoryID)
		}
		return fmt.Errorf("transactions.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove o lançamento do usuário.
func (r *TransactionRepo) Delete(ctx context.Context, userID string, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("transactions.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (entity.Transaction, error) {
	var (
		t     entity.Transaction
		catID *int64
		name  *string
		color *string
		typ   *string
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Date, &t.Description, &t.Amount, &t.Status, &t.PaymentMethod,
		&t.CategoryID, &catID, &name, &color, &typ,
	)
	if err != nil {
		return t, err
	}
	if catID == nil {
		t.Category = entity.Uncategorized()
		return t, nil
	}
	t.Category = entity.Category{ID: *catID, Name: *name, Color: *color, Type: entity.CategoryType(*typ)}
	return t, nil
}

func scanTransactions(rows pgx.Rows) ([]entity.Transaction, error) {
	defer rows.Close()
	results := []entity.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}
