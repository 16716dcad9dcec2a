// Package auth provides password hashing and session-cookie signing for the
// expense tracker. Passwords are stored as bcrypt hashes; session cookies
// carry an opaque server-side token wrapped in an HMAC-signed JWT so that a
// cookie cannot be forged without the configured secret.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCookie is returned when a session cookie fails signature or
// claim validation.
var ErrInvalidCookie = errors.New("invalid session cookie")

// HashPassword returns a bcrypt hash (salted, one-way) of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// bcrypt's comparison is constant-time with respect to the hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateSessionToken returns a 256-bit random token encoded as hex.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// SignSessionToken wraps a session token in an HS256-signed JWT suitable for
// use as a cookie value. The token travels in the "jti" claim.
func SignSessionToken(token string, secret []byte, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        token,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// VerifySessionToken validates the cookie value's signature and expiry and
// returns the embedded session token. Returns ErrInvalidCookie on any
// tampered, expired or malformed value.
func VerifySessionToken(cookieValue string, secret []byte) (string, error) {
	parsed, err := jwt.ParseWithClaims(cookieValue, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCookie, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}
