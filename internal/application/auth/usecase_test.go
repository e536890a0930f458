package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Financeiro-api/internal/application/auth"
	"github.com/jhoicas/Financeiro-api/internal/application/dto"
	"github.com/jhoicas/Financeiro-api/internal/domain"
	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
	"github.com/jhoicas/Financeiro-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Financeiro-api/pkg/jwt"
)

const testSecret = "segredo-de-teste"

// captureNotifier guarda o último token enviado.
type captureNotifier struct {
	user  *entity.User
	token string
	err   error
}

func (n *captureNotifier) SendPasswordReset(_ context.Context, user *entity.User, token string) error {
	n.user, n.token = user, token
	return n.err
}

func newAuth(t *testing.T) (*auth.AuthUseCase, *captureNotifier) {
	t.Helper()
	n := &captureNotifier{}
	uc := auth.NewAuthUseCase(memory.NewStore().Users(), n, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "financeiro-test",
	})
	return uc, n
}

func register(t *testing.T, uc *auth.AuthUseCase, email string) *dto.UserResponse {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: email, Password: "senha-forte-1", Name: "Ana"})
	require.NoError(t, err)
	return u
}

func TestRegisterUser(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "  Ana@Example.COM ", Password: "senha-forte-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "ana@example.com", u.Name, "nome vazio usa o email")

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "outra-senha"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "bia@example.com", Password: "curta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "sem-arroba", Password: "senha-forte-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	u := register(t, uc, "ana@example.com")

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@example.com", Password: "senha-forte-1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	userID, email, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, "ana@example.com", email)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ninguem@example.com", Password: "senha-forte-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "email desconhecido é indistinguível de senha errada")
}

func TestProfile(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	u := register(t, uc, "ana@example.com")
	register(t, uc, "bia@example.com")

	got, err := uc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = uc.GetProfile(ctx, "inexistente")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	name, email := "Ana Souza", "ana.souza@example.com"
	got, err = uc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, email, got.Email)

	taken := "bia@example.com"
	_, err = uc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	blank := "   "
	_, err = uc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangePassword(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	u := register(t, uc, "ana@example.com")

	err := uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "errada", NewPassword: "nova-senha-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "senha-forte-1", NewPassword: "curta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "senha-forte-1", NewPassword: "nova-senha-1"}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "senha-forte-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "nova-senha-1"})
	assert.NoError(t, err)
}

func TestForgotAndResetPassword(t *testing.T) {
	uc, n := newAuth(t)
	ctx := context.Background()
	u := register(t, uc, "ana@example.com")

	require.NoError(t, uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "ana@example.com"}))
	require.NotEmpty(t, n.token)
	assert.Equal(t, u.ID, n.user.ID)
	token := n.token

	_, _, err := pkgjwt.Parse(testSecret, token)
	assert.Error(t, err, "token de redefinição não autentica requisições")

	require.NoError(t, uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "redefinida-1"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "redefinida-1"})
	require.NoError(t, err)

	err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "de-novo-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "token já usado não vale depois da troca de senha")
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	uc, n := newAuth(t)

	require.NoError(t, uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "ninguem@example.com"}))
	assert.Empty(t, n.token)
}

func TestForgotPassword_NotifierError(t *testing.T) {
	uc, n := newAuth(t)
	register(t, uc, "ana@example.com")
	n.err = errors.New("smtp fora do ar")

	err := uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "ana@example.com"})
	assert.Error(t, err)
}

func TestResetPassword_RejectsBadTokens(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	u := register(t, uc, "ana@example.com")

	access, err := pkgjwt.Generate(testSecret, u.ID, u.Email, "financeiro-test", 60)
	require.NoError(t, err)
	forged, err := pkgjwt.GenerateReset(testSecret, u.ID, u.Email, "financeiro-test", 30)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"lixo":              "abc.def.ghi",
		"token de acesso":   access,
		"assinado sem hash": forged,
	} {
		t.Run(name, func(t *testing.T) {
			err := uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: tok, NewPassword: "redefinida-1"})
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
