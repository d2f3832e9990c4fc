package router

import (
	"net/http"

	"bookshelf-service/internal/adapter/gin/handler"
	"bookshelf-service/internal/adapter/gin/middleware"
	"bookshelf-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	tokens middleware.TokenVerifier,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(logger.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Authenticate(tokens, log))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "bookshelf-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		me := v1.Group("/me")
		{
			me.GET("", userHandler.Me)
			me.POST("/books", userHandler.SaveBook)
			me.DELETE("/books/:bookId", userHandler.RemoveBook)
		}
	}

	return router
}
