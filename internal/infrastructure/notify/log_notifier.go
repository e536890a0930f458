// Package notify entrega mensagens ao usuário fora da resposta HTTP.
package notify

import (
	"context"

	"github.com/jhoicas/Financeiro-api/internal/application/auth"
	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
	"github.com/jhoicas/Financeiro-api/pkg/logger"
)

var _ auth.ResetNotifier = (*LogNotifier)(nil)

// LogNotifier registra o link de redefinição no log em vez de enviar email.
// Serve para desenvolvimento e para ambientes sem SMTP configurado.
type LogNotifier struct {
	log     *logger.Logger
	baseURL string
}

// NewLogNotifier baseURL é a página do front que recebe ?token=.
func NewLogNotifier(log *logger.Logger, baseURL string) *LogNotifier {
	return &LogNotifier{log: log, baseURL: baseURL}
}

func (n *LogNotifier) SendPasswordReset(_ context.Context, user *entity.User, token string) error {
	n.log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Str("reset_url", n.baseURL+"?token="+token).
		Msg("redefinição de senha solicitada")
	return nil
}
