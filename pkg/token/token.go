// Package token generates and hashes the opaque session tokens handed to
// clients, and signs the userData profile cookie.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenBytes gives 256 bits of entropy per token.
const SessionTokenBytes = 32

var ErrInvalidCookie = errors.New("invalid userData cookie")

// NewSessionToken returns a fresh opaque session token, base64url encoded.
func NewSessionToken() (string, error) {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashSessionToken is the storage form of a token. Only the hash ever
// touches the database or the cache.
func HashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// UserDataClaims is the payload of the signed userData cookie.
type UserDataClaims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// SignUserData mints the HS256-signed userData cookie value.
func SignUserData(secret string, subject, name, email, picture string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := UserDataClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:    name,
		Email:   email,
		Picture: picture,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseUserData validates and decodes a userData cookie value.
func ParseUserData(secret, cookie string) (*UserDataClaims, error) {
	parsed, err := jwt.ParseWithClaims(cookie, &UserDataClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCookie
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*UserDataClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidCookie
	}
	return claims, nil
}
