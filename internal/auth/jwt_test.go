package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myproparti-blip/My-pro-backend/internal/config"
	"github.com/myproparti-blip/My-pro-backend/internal/models"
)

func setupJWTConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.AccessSecret = "access-secret"
	config.AppConfig.JWT.RefreshSecret = "refresh-secret"
	config.AppConfig.JWT.AccessTTLMinutes = 15
	config.AppConfig.JWT.RefreshTTLDays = 365
	t.Cleanup(func() { config.AppConfig = prev })
}

func testUser() *models.User {
	return &models.User{
		BaseModel:    models.BaseModel{ID: "11111111-2222-3333-4444-555555555555"},
		Phone:        "9876543210",
		Role:         models.UserRoleBuyer,
		TokenVersion: 3,
	}
}

func TestGenerateAndParsePair(t *testing.T) {
	setupJWTConfig(t)
	user := testUser()

	pair, err := GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	accessClaims, err := ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, accessClaims.UserID)
	assert.Equal(t, 3, accessClaims.TokenVersion)

	refreshClaims, err := ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshClaims.UserID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	setupJWTConfig(t)

	pair, err := GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = ParseAccessToken(pair.RefreshToken)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseRefreshToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsGarbage(t *testing.T) {
	setupJWTConfig(t)

	_, err := ParseAccessToken("not-a-token")
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseAccessToken("")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsExpired(t *testing.T) {
	setupJWTConfig(t)
	config.AppConfig.JWT.AccessTTLMinutes = -1

	pair, err := GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = ParseAccessToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsTamperedSecret(t *testing.T) {
	setupJWTConfig(t)

	pair, err := GenerateTokenPair(testUser())
	require.NoError(t, err)

	config.AppConfig.JWT.AccessSecret = "rotated-secret"
	_, err = ParseAccessToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
