package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/myproparti-blip/My-pro-backend/internal/config"
	"github.com/myproparti-blip/My-pro-backend/internal/models"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the compact payload shared by access and refresh tokens:
// the user id plus a snapshot of the account's token version.
type Claims struct {
	UserID       string `json:"uid"`
	TokenVersion int    `json:"tv"`
	jwt.RegisteredClaims
}

// TokenPair is a freshly minted access/refresh credential pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// GenerateTokenPair signs an access token (short-lived) and a refresh
// token (long-lived) for the user, embedding the current token version.
func GenerateTokenPair(user *models.User) (*TokenPair, error) {
	cfg := config.GetConfig()

	access, err := sign(user, cfg.JWT.AccessSecret, time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	refresh, err := sign(user, cfg.JWT.RefreshSecret, time.Duration(cfg.JWT.RefreshTTLDays)*24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func sign(user *models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:       user.ID,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken verifies the access token signature and expiry.
func ParseAccessToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, config.GetConfig().JWT.AccessSecret)
}

// ParseRefreshToken verifies the refresh token signature and expiry.
func ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, config.GetConfig().JWT.RefreshSecret)
}

func parse(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
