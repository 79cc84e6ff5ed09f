package jwtauth

import (
	"context"
	"testing"
	"time"

	"tour-planning-assistant/internal/ports/auth"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, key any, c Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, c).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerifier_ValidToken(t *testing.T) {
	v, err := NewVerifier("s3cret")
	require.NoError(t, err)

	tok := sign(t, jwt.SigningMethodHS256, []byte("s3cret"), Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "planner-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "admin",
	})

	claims, err := v.Verify(context.Background(), tok)

	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "planner-1", Role: "admin"}, claims)
}

func TestVerifier_UsernameFallback(t *testing.T) {
	v, err := NewVerifier("s3cret")
	require.NoError(t, err)

	tok := sign(t, jwt.SigningMethodHS256, []byte("s3cret"), Claims{Username: "fake_admin"})

	claims, err := v.Verify(context.Background(), tok)

	require.NoError(t, err)
	assert.Equal(t, "fake_admin", claims.UserID)
}

func TestVerifier_Rejects(t *testing.T) {
	v, err := NewVerifier("s3cret")
	require.NoError(t, err)

	cases := map[string]string{
		"wrong key": sign(t, jwt.SigningMethodHS256, []byte("other"), Claims{Username: "u"}),
		"expired": sign(t, jwt.SigningMethodHS256, []byte("s3cret"), Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}),
		"wrong alg":  sign(t, jwt.SigningMethodHS512, []byte("s3cret"), Claims{Username: "u"}),
		"no subject": sign(t, jwt.SigningMethodHS256, []byte("s3cret"), Claims{Role: "admin"}),
		"garbage":    "not-a-jwt",
	}

	for name, tok := range cases {
		_, err := v.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, name)
	}
}

func TestNewVerifier_RequiresKey(t *testing.T) {
	_, err := NewVerifier(" ")
	assert.ErrorIs(t, err, ErrNoSigningKey)
}
