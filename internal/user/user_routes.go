package user

import (
	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"
	"github.com/dhruv2311-dot/odoo-gcet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.Me)
		users.GET("", middleware.RequireRole(domain.RoleHR), h.GetAll)
		users.GET("/:id", middleware.RequireRole(domain.RoleHR), h.GetByID)
		users.PUT("/:id", middleware.RequireRole(domain.RoleHR), h.Update)
		users.POST("/:id/deactivate", middleware.RequireRole(domain.RoleAdmin), h.Deactivate)
		users.POST("/:id/activate", middleware.RequireRole(domain.RoleAdmin), h.Activate)
	}
}
