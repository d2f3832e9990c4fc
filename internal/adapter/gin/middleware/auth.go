package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "bookshelf-service/internal/domain/user"
	"bookshelf-service/pkg/token"
)

const identityKey = "auth_identity"

// TokenVerifier checks a bearer token and returns its identity claims.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// Authenticate extracts a Bearer token from the Authorization header and, if
// it verifies, stores the derived identity in the request context. It never
// aborts the request: an absent or invalid token just leaves the context
// without an identity, and each protected handler decides how to fail. That
// keeps unauthenticated requests from ever reaching storage while letting the
// public routes share the same chain.
func Authenticate(tokens TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			log.Debug("malformed authorization header")
			c.Next()
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			log.Debug("token verification failed", zap.Error(err))
			c.Next()
			return
		}

		c.Set(identityKey, domain.Identity{
			ID:       claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
		})
		c.Next()
	}
}

// IdentityFromContext returns the authenticated identity stored by
// Authenticate, if any.
func IdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}
