package repository

import (
	"context"

	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
)

// CategoryRepository define a porta de persistência para Category.
// As listagens incluem as categorias padrão (sem dono) além das do usuário;
// Update e Delete só alcançam categorias do próprio usuário.
type CategoryRepository interface {
	List(ctx context.Context, userID string) ([]entity.Category, error)
	ListPage(ctx context.Context, userID string, limit, offset int) ([]entity.Category, error)
	GetByID(ctx context.Context, userID string, id int64) (*entity.Category, error)
	Create(ctx context.Context, c *entity.Category) error
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, userID string, id int64) error
}
