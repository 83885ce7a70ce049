package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adrian140/Stockmind/internal/config"
	"github.com/Adrian140/Stockmind/internal/domain"
)

const secret = "segredo-de-teste"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims domain.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(&config.Config{Auth: config.Auth{Secret: secret}})
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "Token válido",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(secret), domain.Claims{OwnerID: "owner", RoleID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}})
			},
		},
		{
			name: "Token expirado",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(secret), domain.Claims{OwnerID: "owner", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: past}})
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "Assinatura com outro segredo",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("outro"), domain.Claims{OwnerID: "owner"})
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "Sem owner_id",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(secret), domain.Claims{RoleID: 1})
			},
			wantErr: ErrMissingOwner,
		},
		{
			name:    "Texto que não é JWT",
			token:   func(t *testing.T) string { return "abc" },
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token(t))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "owner", claims.OwnerID)
			assert.Equal(t, 1, claims.RoleID)
		})
	}
}

func TestService_ValidateToken_NoSecret(t *testing.T) {
	service := NewService(&config.Config{})

	_, err := service.ValidateToken("qualquer")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
