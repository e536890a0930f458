package auth

import (
	"context"

	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
)

// ResetNotifier entrega o token de redefinição de senha ao usuário (email, log, etc.).
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, user *entity.User, token string) error
}
