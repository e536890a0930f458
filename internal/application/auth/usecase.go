// Package auth contém os casos de uso de conta: cadastro, login, perfil e senha.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Financeiro-api/internal/application/dto"
	"github.com/jhoicas/Financeiro-api/internal/domain"
	"github.com/jhoicas/Financeiro-api/internal/domain/entity"
	"github.com/jhoicas/Financeiro-api/internal/domain/repository"
	"github.com/jhoicas/Financeiro-api/pkg/jwt"
)

const minPasswordLen = 8

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret          string
	ExpMinutes      int
	Issuer          string
	ResetExpMinutes int
}

// AuthUseCase casos de uso de autenticação e conta do usuário.
type AuthUseCase struct {
	userRepo repository.UserRepository
	notifier ResetNotifier
	jwtCfg   JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, notifier ResetNotifier, jwtCfg JWTConfig) *AuthUseCase {
	if jwtCfg.ResetExpMinutes <= 0 {
		jwtCfg.ResetExpMinutes = 30
	}
	return &AuthUseCase{userRepo: userRepo, notifier: notifier, jwtCfg: jwtCfg}
}

// RegisterUser cria um usuário com senha bcrypt. Devolve ErrEmailAlreadyExists se o email já existir.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: a senha deve ter ao menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("registro: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/senha, gera o JWT e devolve token + usuário.
// Email desconhecido e senha errada devolvem o mesmo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// GetProfile devolve o usuário autenticado.
func (uc *AuthUseCase) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateProfile altera nome e/ou email.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nome vazio", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !validEmail(email) {
			return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
		}
		if email != user.Email {
			other, err := uc.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ChangePassword troca a senha exigindo a senha atual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.mustGet(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	return uc.setPassword(ctx, user, in.NewPassword)
}

// ForgotPassword gera um token de redefinição e o entrega pelo ResetNotifier.
// Email desconhecido não é erro, para não revelar quais contas existem.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	token, err := jwt.GenerateReset(uc.resetKey(user), user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ResetExpMinutes)
	if err != nil {
		return err
	}
	if err := uc.notifier.SendPasswordReset(ctx, user, token); err != nil {
		return fmt.Errorf("enviar redefinição: %w", err)
	}
	return nil
}

// ResetPassword valida o token de redefinição e grava a nova senha.
// O token é assinado com o hash da senha vigente: depois de qualquer troca de
// senha os tokens emitidos antes deixam de validar.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	userID, err := jwt.PeekUserID(in.Token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUnauthorized
	}
	claims, err := jwt.ParseClaims(uc.resetKey(user), in.Token)
	if err != nil || claims.Purpose != jwt.PurposeReset || claims.UserID != user.ID {
		return domain.ErrUnauthorized
	}
	return uc.setPassword(ctx, user, in.NewPassword)
}

func (uc *AuthUseCase) resetKey(user *entity.User) string {
	return uc.jwtCfg.Secret + "." + user.PasswordHash
}

func (uc *AuthUseCase) setPassword(ctx context.Context, user *entity.User, password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: a senha deve ter ao menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

func (uc *AuthUseCase) mustGet(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validEmail(s string) bool {
	at := strings.LastIndexByte(s, '@')
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
