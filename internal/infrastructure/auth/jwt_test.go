package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietcart/backend/internal/infrastructure/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "vietcart-test",
		MaxRefreshCount:        3,
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService()
	accountID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AccountID: accountID,
		Email:     "user@example.com",
		Role:      "user",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, accountID.String(), claims.AccountID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	got, err := claims.GetAccountUUID()
	require.NoError(t, err)
	assert.Equal(t, accountID, got)
}

func TestTokenTypeMismatch(t *testing.T) {
	svc := newTestService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{AccountID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  -1 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "vietcart-test",
	})

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{AccountID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecretRejected(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "another-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "vietcart-test",
	})

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{AccountID: uuid.New()})
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestService()
	accountID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		AccountID: accountID,
		Email:     "user@example.com",
		Role:      "user",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokenPair(pair.RefreshToken, "user@example.com", "staff")
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "staff", claims.Role, "role picked up on refresh")

	refreshClaims, err := svc.ValidateRefreshToken(refreshed.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestRefreshCountLimit(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "vietcart-test",
		MaxRefreshCount:        1,
	})

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{AccountID: uuid.New()})
	require.NoError(t, err)

	first, err := svc.RefreshTokenPair(pair.RefreshToken, "", "")
	require.NoError(t, err)

	_, err = svc.RefreshTokenPair(first.RefreshToken, "", "")
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}
