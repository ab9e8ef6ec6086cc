package attendance

import (
	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"
	"github.com/dhruv2311-dot/odoo-gcet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.POST("/check-in", h.CheckIn)
		attendance.POST("/check-out", h.CheckOut)
		attendance.GET("/me", h.GetMine)
		attendance.GET("", middleware.RequireRole(domain.RoleHR), h.GetAll)
	}
}
