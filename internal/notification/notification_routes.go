package notification

import (
	"github.com/dhruv2311-dot/odoo-gcet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.ListMine)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/mark-read", h.MarkRead)
		notifications.POST("/mark-all-read", h.MarkAllRead)
		notifications.DELETE("/:id", h.Delete)
	}
}
