package document

import (
	"github.com/dhruv2311-dot/odoo-gcet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	uploads := r.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	{
		uploads.POST("", h.Upload)
		uploads.GET("", h.List)
		uploads.DELETE("/:id", h.Delete)
	}
}
