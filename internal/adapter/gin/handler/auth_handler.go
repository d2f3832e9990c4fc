package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookshelf-service/internal/usecase/user"
)

// AuthHandler handles the public account endpoints: register and login.
type AuthHandler struct {
	uc  user.Service
	log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(uc user.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		uc:  uc,
		log: log,
	}
}

// RegisterRequest represents the HTTP request body for creating an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the HTTP request body for logging in. Either
// username or email identifies the account.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the HTTP response for register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid register request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "request body must be valid JSON",
		})
		return
	}

	h.log.Info("register request", zap.String("username", req.Username), zap.String("email", req.Email))

	resp, err := h.uc.Register(c.Request.Context(), user.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.log.Warn("register failed", zap.Error(err))
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token: resp.Token,
		User:  toUserResponse(resp.User),
	})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid login request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "request body must be valid JSON",
		})
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), user.LoginRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.log.Warn("login failed", zap.String("username", req.Username))
		handleError(c, h.log, err)
		return
	}

	h.log.Info("login succeeded", zap.Int64("user_id", resp.User.ID))

	c.JSON(http.StatusOK, AuthResponse{
		Token: resp.Token,
		User:  toUserResponse(resp.User),
	})
}
