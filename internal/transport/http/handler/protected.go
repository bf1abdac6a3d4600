package handler

import (
	"net/http"

	"github.com/almasbek/auth-gateway/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

// ProtectedHandler serves the two gated example resources. They stand in
// for real business logic; each just acknowledges that its gate passed.
type ProtectedHandler struct{}

func NewProtectedHandler() *ProtectedHandler {
	return &ProtectedHandler{}
}

// GET /user — any authenticated user.
func (h *ProtectedHandler) User(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "authenticated",
		"user_id": c.GetString(middleware.CtxUserID),
	})
}

// GET /admin — admin role only.
func (h *ProtectedHandler) Admin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "admin access granted",
		"user_id": c.GetString(middleware.CtxUserID),
	})
}
