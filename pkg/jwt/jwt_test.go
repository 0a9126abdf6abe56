package jwt

import (
	"testing"
	"time"

	"rxcourier/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(accessExpiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := testService(15 * time.Minute)

	token, tokenID, err := svc.GenerateAccessToken(42, RoleDoctor, "9876543210")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, RoleDoctor, claims.Role)
	assert.Equal(t, "9876543210", claims.Mobile)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenCarriesItsType(t *testing.T) {
	svc := testService(15 * time.Minute)

	token, _, err := svc.GenerateRefreshToken(42, RoleAdmin, "")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestTokenIDsAreUnique(t *testing.T) {
	svc := testService(15 * time.Minute)

	_, first, err := svc.GenerateAccessToken(1, RoleDoctor, "9876543210")
	require.NoError(t, err)
	_, second, err := svc.GenerateAccessToken(1, RoleDoctor, "9876543210")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := testService(15 * time.Minute)
	other := NewJWTService(config.JWTConfig{Secret: "other-secret", AccessExpiry: 15 * time.Minute})

	token, _, err := svc.GenerateAccessToken(42, RoleDoctor, "9876543210")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := testService(-time.Minute)

	token, _, err := svc.GenerateAccessToken(42, RoleDoctor, "9876543210")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := testService(15 * time.Minute)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
