package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Financeiro-api/internal/domain"
	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
	"github.com/jhoicas/Financeiro-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementação do porto CategoryRepository sobre PostgreSQL.
// Categorias com user_id NULL são as padrão, visíveis a todos e imutáveis por aqui.
type CategoryRepo struct {
	db Querier
}

// NewCategoryRepository constrói o adaptador de persistência para categorias.
func NewCategoryRepository(db Querier) *CategoryRepo {
	return &CategoryRepo{db: db}
}

const categorySelect = `
	SELECT id, COALESCE(user_id::text, ''), name, color, COALESCE(icon, ''), type, created_at
	FROM categories
	WHERE (user_id IS NULL OR user_id = $1)`

// List devolve as categorias padrão e as do usuário, por id.
func (r *CategoryRepo) List(ctx context.Context, userID string) ([]entity.Category, error) {
	rows, err := r.db.Query(ctx, categorySelect+` ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("categories.List: %w", err)
	}
	return scanCategories(rows)
}

// ListPage devolve uma página das categorias visíveis.
func (r *CategoryRepo) ListPage(ctx context.Context, userID string, limit, offset int) ([]entity.Category, error) {
	rows, err := r.db.Query(ctx, categorySelect+` ORDER BY id LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("categories.ListPage: %w", err)
	}
	return scanCategories(rows)
}

// GetByID devolve (nil, nil) se a categoria não existir ou não for visível ao usuário.
func (r *CategoryRepo) GetByID(ctx context.Context, userID string, id int64) (*entity.Category, error) {
	var c entity.Category
	var typ string
	err := r.db.QueryRow(ctx, categorySelect+` AND id = $2`, userID, id).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &typ, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("categories.GetByID: %w", err)
	}
	c.Type = entity.CategoryType(typ)
	return &c, nil
}

// Create insere uma categoria do usuário e preenche c.ID.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (user_id, name, color, icon, type, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING id`
	err := r.db.QueryRow(ctx, query, c.UserID, c.Name, c.Color, c.Icon, string(c.Type), c.CreatedAt).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: já existe uma categoria %q", domain.ErrConflict, c.Name)
		}
		return fmt.Errorf("categories.Create: %w", err)
	}
	return nil
}

// Update altera uma categoria do próprio usuário.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET name = $3, color = $4, icon = NULLIF($5, ''), type = $6
		WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, c.ID, c.UserID, c.Name, c.Color, c.Icon, string(c.Type))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: já existe uma categoria %q", domain.ErrConflict, c.Name)
		}
		return fmt.Errorf("categories.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove uma categoria do próprio usuário; em uso por lançamentos -> ErrConflict.
func (r *CategoryRepo) Delete(ctx context.Context, userID string, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoria em uso por lançamentos", domain.ErrConflict)
		}
		return fmt.Errorf("categories.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCategories(rows pgx.Rows) ([]entity.Category, error) {
	defer rows.Close()
	results := []entity.Category{}
	for rows.Next() {
		var c entity.Category
		var typ string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &typ, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = entity.CategoryType(typ)
		results = append(results, c)
	}
	return results, rows.Err()
}
