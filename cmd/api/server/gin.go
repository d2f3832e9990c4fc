package server

import (
	"net/http"
	"time"

	ginhandler "bookshelf-service/internal/adapter/gin/handler"
	ginrouter "bookshelf-service/internal/adapter/gin/router"
	"bookshelf-service/pkg/token"

	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	authHandler *ginhandler.AuthHandler,
	userHandler *ginhandler.UserHandler,
	tokens *token.Service,
	ginAddr string,
	l *zap.Logger,
) *http.Server {
	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(authHandler, userHandler, tokens, l)

	l.Info("REST API configured", zap.String("address", ginAddr))

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
