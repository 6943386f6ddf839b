package auth

import (
	"time"

	"farmstaff/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		// Credential endpoints are rate limited per IP.
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Every(time.Second), 5), handler.Login)
		authGroup.POST("/refresh", middleware.RateLimitByIP(rate.Every(time.Second), 5), handler.Refresh)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.GetMe)
	}
}
