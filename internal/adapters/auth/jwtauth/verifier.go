package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tour-planning-assistant/internal/ports/auth"

	"github.com/golang-jwt/jwt/v4"
)

var ErrNoSigningKey = errors.New("jwt signing key required")

// Verifier valida tokens HS256 firmados con una clave compartida.
// Los tokens los emite otro servicio; acá solo se leen.
type Verifier struct {
	key    []byte
	parser *jwt.Parser
}

func NewVerifier(signingKey string) (*Verifier, error) {
	if strings.TrimSpace(signingKey) == "" {
		return nil, ErrNoSigningKey
	}
	return &Verifier{
		key:    []byte(signingKey),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

// Claims del token: "sub" (o "username") es el id del usuario.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	var c Claims
	parsed, err := v.parser.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	userID := strings.TrimSpace(c.Subject)
	if userID == "" {
		userID = strings.TrimSpace(c.Username)
	}
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", auth.ErrInvalidToken)
	}

	return auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(c.Email),
		Role:   strings.TrimSpace(c.Role),
	}, nil
}
