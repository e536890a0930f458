package repository

import (
	"context"

	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
)

// UserRepository define a porta de persistência para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID e GetByEmail devolvem (nil, nil) quando o usuário não existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
