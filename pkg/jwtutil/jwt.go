package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"catalog-service/pkg/config"
)

var (
	signingKey []byte
	tokenTTL   time.Duration
)

// Initialize sets the signing key and token lifetime from configuration.
// Must be called before any token is generated or validated.
func Initialize(cfg *config.JWTConfig) {
	signingKey = []byte(cfg.SigningKey)
	tokenTTL = time.Duration(cfg.ExpirationHours) * time.Hour
}

// SessionClaims represents the claims embedded in a session token. The
// token is opaque to clients; the server additionally stores it on the
// user row, so only the most recently issued token per user resolves.
type SessionClaims struct {
	Email  string `json:"email"`
	UserID uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed session token and returns it together
// with its expiry time.
func GenerateToken(email string, userID uint) (string, time.Time, error) {
	expiresAt := time.Now().Add(tokenTTL)
	claims := SessionClaims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken checks the token signature and expiry and returns the
// embedded claims.
func ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
