package httptransport

import (
	"log/slog"

	"github.com/almasbek/auth-gateway/internal/domain"
	"github.com/almasbek/auth-gateway/internal/token"
	"github.com/almasbek/auth-gateway/internal/transport/http/handler"
	"github.com/almasbek/auth-gateway/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, tokens *token.Issuer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens)
	protected := handler.NewProtectedHandler()

	// Public auth routes
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// Protected resources: authenticate, then authorize
	r.GET("/user", authMW, protected.User)
	r.GET("/admin", authMW, middleware.RequireRole(domain.RoleAdmin), protected.Admin)

	return r
}
