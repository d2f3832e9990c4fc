package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookshelf-service/internal/adapter/gin/middleware"
	"bookshelf-service/internal/usecase/user"
	apperrors "bookshelf-service/pkg/errors"
)

// UserHandler handles the protected endpoints: the current user's profile and
// saved-book collection. Every handler requires an identity established by the
// Authenticate middleware and fails with 401 before touching the usecase when
// none is present.
type UserHandler struct {
	uc  user.Service
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// SaveBookRequest represents the HTTP request body for saving a book
type SaveBookRequest struct {
	BookID      string   `json:"bookId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Authors     []string `json:"authors"`
	Image       string   `json:"image"`
	Link        string   `json:"link"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID         int64          `json:"id"`
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	BookCount  int            `json:"bookCount"`
	SavedBooks []BookResponse `json:"savedBooks"`
}

// BookResponse represents a saved book in API responses
type BookResponse struct {
	BookID      string   `json:"bookId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Authors     []string `json:"authors"`
	Image       string   `json:"image,omitempty"`
	Link        string   `json:"link,omitempty"`
}

// Me handles GET /v1/me
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		handleError(c, h.log, apperrors.ErrUnauthenticated)
		return
	}

	resp, err := h.uc.Me(c.Request.Context(), identity)
	if err != nil {
		h.log.Error("me failed", zap.Int64("user_id", identity.ID), zap.Error(err))
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*resp))
}

// SaveBook handles POST /v1/me/books
func (h *UserHandler) SaveBook(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		handleError(c, h.log, apperrors.ErrUnauthenticated)
		return
	}

	var req SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid save book request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "request body must be valid JSON",
		})
		return
	}

	h.log.Info("save book request", zap.Int64("user_id", identity.ID), zap.String("book_id", req.BookID))

	resp, err := h.uc.SaveBook(c.Request.Context(), identity, user.SaveBookRequest{
		BookID:      req.BookID,
		Title:       req.Title,
		Description: req.Description,
		Authors:     req.Authors,
		Image:       req.Image,
		Link:        req.Link,
	})
	if err != nil {
		h.log.Warn("save book failed", zap.Int64("user_id", identity.ID), zap.Error(err))
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*resp))
}

// RemoveBook handles DELETE /v1/me/books/:bookId
func (h *UserHandler) RemoveBook(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		handleError(c, h.log, apperrors.ErrUnauthenticated)
		return
	}

	bookID := c.Param("bookId")

	h.log.Info("remove book request", zap.Int64("user_id", identity.ID), zap.String("book_id", bookID))

	resp, err := h.uc.RemoveBook(c.Request.Context(), identity, user.RemoveBookRequest{
		BookID: bookID,
	})
	if err != nil {
		h.log.Warn("remove book failed", zap.Int64("user_id", identity.ID), zap.Error(err))
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*resp))
}

func toUserResponse(u user.User) UserResponse {
	books := make([]BookResponse, len(u.SavedBooks))
	for i, b := range u.SavedBooks {
		books[i] = BookResponse{
			BookID:      b.BookID,
			Title:       b.Title,
			Description: b.Description,
			Authors:     b.Authors,
			Image:       b.Image,
			Link:        b.Link,
		}
	}

	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		BookCount:  len(books),
		SavedBooks: books,
	}
}
