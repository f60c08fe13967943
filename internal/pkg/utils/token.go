package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/ougirez/statdash/internal/pkg/constants"
)

// AuthTokenWrapper is the payload of an admin session token.
type AuthTokenWrapper struct {
	jwt.StandardClaims
	Admin string `json:"admin"`
}

// GenerateAuthToken signs w with secret. ttl <= 0 means no expiry.
func GenerateAuthToken(w *AuthTokenWrapper, secret string, ttl time.Duration) (string, error) {
	if ttl > 0 {
		w.ExpiresAt = time.Now().Add(ttl).Unix()
	}
	w.IssuedAt = time.Now().Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, w)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("SignedString: %w", err)
	}
	return signed, nil
}

// ParseAuthToken verifies the HMAC signature and expiry of an admin token.
func ParseAuthToken(tokenStr, secret string) (*AuthTokenWrapper, error) {
	claims := new(AuthTokenWrapper)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrUnauthorized, err.Error())
	}
	if !token.Valid {
		return nil, constants.ErrUnauthorized
	}
	return claims, nil
}
