package export

import (
	"github.com/dhruv2311-dot/odoo-gcet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	export := r.Group("/export")
	export.Use(middleware.AuthMiddleware())
	{
		export.GET("/attendance", h.ExportAttendance)
		export.GET("/leave", h.ExportLeaves)
	}
}
