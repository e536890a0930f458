package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Propósitos de token. Um token de redefinição de senha nunca autentica requisições.
const (
	PurposeAccess = "access"
	PurposeReset  = "password_reset"
)

// Claims inclui os claims padrão JWT mais os campos próprios da aplicação.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

// Generate gera um token de acesso assinado com userID e email.
func Generate(secret, userID, email, issuer string, expMinutes int) (string, error) {
	return sign(secret, userID, email, issuer, PurposeAccess, expMinutes)
}

// GenerateReset gera um token de curta duração para redefinição de senha.
func GenerateReset(secret, userID, email, issuer string, expMinutes int) (string, error) {
	return sign(secret, userID, email, issuer, PurposeReset, expMinutes)
}

func sign(secret, userID, email, issuer, purpose string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:  userID,
		Email:   email,
		Purpose: purpose,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida um token de acesso e devolve userID e email.
// Retorna erro se o token for inválido, expirado, com assinatura incorreta ou de outro propósito.
func Parse(secret, tokenString string) (userID, email string, err error) {
	claims, err := ParseClaims(secret, tokenString)
	if err != nil {
		return "", "", err
	}
	if claims.Purpose != PurposeAccess {
		return "", "", fmt.Errorf("jwt: propósito inesperado %q", claims.Purpose)
	}
	return claims.UserID, claims.Email, nil
}

// ParseClaims valida assinatura e expiração e devolve os claims sem checar o propósito.
func ParseClaims(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// PeekUserID lê o user_id sem validar a assinatura. Serve apenas para escolher a
// chave de verificação; o token ainda precisa passar por ParseClaims.
func PeekUserID(tokenString string) (string, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", err
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("jwt: user_id ausente")
	}
	return claims.UserID, nil
}
