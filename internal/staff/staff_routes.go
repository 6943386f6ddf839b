package staff

import (
	"farmstaff/internal/middleware"
	"farmstaff/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	staffGroup := r.Group("/staff")
	staffGroup.Use(middleware.AuthMiddleware())
	{
		staffGroup.GET("", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetAll)
		staffGroup.GET("/options", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetOptions)
		staffGroup.GET("/:id", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetByID)
		staffGroup.POST("", middleware.RBACAuthorize(rbacService, "staff", "create"), handler.Create)
		staffGroup.PUT("/:id", middleware.RBACAuthorize(rbacService, "staff", "update"), handler.Update)
		staffGroup.POST("/:id/deactivate", middleware.RBACAuthorize(rbacService, "staff", "update"), handler.Deactivate)
		staffGroup.DELETE("/:id", middleware.RBACAuthorize(rbacService, "staff", "delete"), handler.Delete)
	}
}
