package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "bookshelf-service/pkg/errors"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:       "Unauthenticated",
			err:        apperrors.ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthenticated",
		},
		{
			name:       "AuthenticationFailed",
			err:        apperrors.ErrAuthenticationFailed,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "authentication_failed",
		},
		{
			name:       "Validation",
			err:        apperrors.NewValidationError("email", "must be a valid email"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
			wantField:  "email",
		},
		{
			name:       "NotFound",
			err:        apperrors.NewNotFoundError("user", ""),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "Internal",
			err:        apperrors.NewInternalError("db write failed", errors.New("broken pipe")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
		{
			name:       "UntypedError",
			err:        errors.New("something unexpected"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
		{
			name:       "WrappedValidation",
			err:        fmt.Errorf("saving book: %w", apperrors.NewValidationError("title", "is required")),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
			wantField:  "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handleError(c, zaptest.NewLogger(t), tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, tt.wantField, resp.Field)
		})
	}
}

func TestHandleError_InternalDetailsNotExposed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handleError(c, zaptest.NewLogger(t), apperrors.NewInternalError("db write failed", errors.New("broken pipe")))

	assert.NotContains(t, w.Body.String(), "broken pipe")
	assert.NotContains(t, w.Body.String(), "db write failed")
}
