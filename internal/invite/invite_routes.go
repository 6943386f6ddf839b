package invite

import (
	"time"

	"farmstaff/internal/middleware"
	"farmstaff/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	invites := r.Group("/invites")

	// Acceptance is unauthenticated: the token is the credential.
	invites.POST("/accept", middleware.RateLimitByIP(rate.Every(time.Second), 5), handler.Accept)

	managed := invites.Group("")
	managed.Use(middleware.AuthMiddleware())
	{
		managed.GET("", middleware.RBACAuthorize(rbacService, "invite", "read"), handler.GetAll)
		managed.POST("", middleware.RBACAuthorize(rbacService, "invite", "manage"), handler.Create)
		managed.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "invite", "manage"), handler.Cancel)
	}
}
