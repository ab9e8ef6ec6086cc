package leave

import (
	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"
	"github.com/dhruv2311-dot/odoo-gcet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	leave := r.Group("/leave")
	leave.Use(middleware.AuthMiddleware())
	{
		leave.POST("", h.Submit)
		leave.GET("", h.GetAll)
		leave.POST("/:id/approve", middleware.RequireRole(domain.RoleHR), h.Approve)
		leave.POST("/:id/reject", middleware.RequireRole(domain.RoleHR), h.Reject)
	}
}
