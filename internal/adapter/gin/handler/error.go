package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "bookshelf-service/pkg/errors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// handleError converts usecase errors to HTTP responses. The status comes
// from the HTTPStatuser interface and the response code from the error type,
// never from the message text. Anything without a status, and internal
// errors, are masked behind a generic 500.
func handleError(c *gin.Context, log *zap.Logger, err error) {
	var statuser apperrors.HTTPStatuser
	if !errors.As(err, &statuser) {
		log.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	resp := ErrorResponse{}
	switch e := statuser.(type) {
	case *apperrors.UnauthenticatedError:
		resp.Error = "unauthenticated"
		resp.Message = e.Error()
	case *apperrors.AuthenticationFailedError:
		resp.Error = "authentication_failed"
		resp.Message = e.Error()
	case *apperrors.ValidationError:
		resp.Error = "validation_error"
		resp.Field = e.Field
		resp.Message = e.Message
	case *apperrors.NotFoundError:
		resp.Error = "not_found"
		resp.Message = e.Error()
	default:
		log.Error("internal error", zap.Error(err))
		resp.Error = "internal_error"
		resp.Message = "An internal error occurred"
	}

	c.JSON(statuser.HTTPStatus(), resp)
}
