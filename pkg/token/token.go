package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer   = "bookshelf-service"
	audience = "bookshelf-api"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// malformed token, wrong signing method, or expiry. Callers must not be able to
// distinguish an expired token from a forged one.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the identity claims embedded in a signed token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Service issues and verifies signed identity tokens. The signing secret is
// set once at startup and never mutated, so a Service is safe for concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service signing with the given secret.
// Tokens expire after ttl.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token carrying the user's identity claims.
// It has no side effects beyond signing and never touches storage.
func (s *Service) Issue(userID int64, username, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID:   userID,
		Username: username,
		Email:    email,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks the signature and expiry of a token string and returns the
// embedded claims. Any failure yields ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
