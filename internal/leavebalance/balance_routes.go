package leavebalance

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
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "leave_balance", "manage"), handler.GetAll)
		balances.GET("/:staffId", middleware.RBACAuthorize(rbacService, "leave_balance", "read"), handler.GetByStaff)
		balances.POST("", middleware.RBACAuthorize(rbacService, "leave_balance", "manage"), handler.Create)
		balances.PUT("/:staffId", middleware.RBACAuthorize(rbacService, "leave_balance", "manage"), handler.SetTotals)
		balances.DELETE("/:staffId", middleware.RBACAuthorize(rbacService, "leave_balance", "manage"), handler.Delete)
	}
}
