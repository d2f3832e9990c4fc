package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "bookshelf-service/internal/domain/user"
	"bookshelf-service/pkg/token"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *token.Service) {
	gin.SetMode(gin.TestMode)
	tokens := token.NewService("test-secret", time.Hour)
	logger := zaptest.NewLogger(t)

	r := gin.New()
	r.Use(Authenticate(tokens, logger))
	r.GET("/whoami", func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": identity.ID, "username": identity.Username})
	})

	return r, tokens
}

func TestAuthenticate_ValidToken(t *testing.T) {
	r, tokens := setupAuthTest(t)

	signed, err := tokens.Issue(1, "alice", "alice@x.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAuthenticate_NoToken(t *testing.T) {
	r, _ := setupAuthTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	r, tokens := setupAuthTest(t)

	signed, err := tokens.Issue(1, "alice", "alice@x.com")
	require.NoError(t, err)

	for _, header := range []string{"Bearer", "Bearer ", signed, "Basic " + signed} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	r, _ := setupAuthTest(t)

	forged, err := token.NewService("other-secret", time.Hour).Issue(1, "alice", "alice@x.com")
	require.NoError(t, err)
	expired, err := token.NewService("test-secret", -time.Minute).Issue(1, "alice", "alice@x.com")
	require.NoError(t, err)

	for _, bad := range []string{"garbage", forged, expired} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+bad)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestIdentityFromContext_Empty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	identity, ok := IdentityFromContext(c)
	assert.False(t, ok)
	assert.Equal(t, domain.Identity{}, identity)
}
