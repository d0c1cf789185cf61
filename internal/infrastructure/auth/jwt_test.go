package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-for-signing-tokens-0123456789",
		TokenExpiration: expiration,
		Issuer:          "retailcore-test",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	service := newService(time.Hour)
	userID := uuid.New()

	token, err := service.Generate(userID, "cashier-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)

	claims, err := service.Validate(token.Value)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "cashier-1", claims.Username)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateExpiredToken(t *testing.T) {
	service := newService(-time.Minute)

	token, err := service.Generate(uuid.New(), "")
	require.NoError(t, err)

	_, err = service.Validate(token.Value)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTamperedToken(t *testing.T) {
	service := newService(time.Hour)

	token, err := service.Generate(uuid.New(), "")
	require.NoError(t, err)

	_, err = service.Validate(token.Value + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issued, err := newService(time.Hour).Generate(uuid.New(), "")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:          "a-completely-different-secret-9876543210",
		TokenExpiration: time.Hour,
		Issuer:          "retailcore-test",
	})
	_, err = other.Validate(issued.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
