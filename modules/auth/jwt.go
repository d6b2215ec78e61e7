package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, carries a bad
	// signature, or lacks a subject.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token's exp has passed.
	ErrExpiredToken = errors.New("token has expired")
)

// JWTConfig holds token-service configuration, fixed at construction.
type JWTConfig struct {
	SecretKey      string
	Issuer         string
	AccessTokenTTL time.Duration
}

// JWTManager issues and verifies signed identity tokens. Tokens are
// stateless; expiry is the only invalidation mechanism.
type JWTManager struct {
	config JWTConfig
}

// NewJWTManager creates a new JWTManager with the given configuration.
func NewJWTManager(config JWTConfig) *JWTManager {
	return &JWTManager{config: config}
}

// Issue produces a signed token whose subject is the given user ID, expiring
// after the configured TTL.
func (m *JWTManager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    m.config.Issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.config.AccessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// Verify validates the token signature and expiry and returns the subject
// user ID.
func (m *JWTManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// ExpiresInSeconds returns the token lifetime in seconds.
func (m *JWTManager) ExpiresInSeconds() int64 {
	return int64(m.config.AccessTokenTTL.Seconds())
}
