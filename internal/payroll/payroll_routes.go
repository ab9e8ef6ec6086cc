package payroll

import (
	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"
	"github.com/dhruv2311-dot/odoo-gcet/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	{
		payroll.GET("/me", h.GetMine)
		payroll.GET("", middleware.RequireRole(domain.RoleHR), h.GetAll)
		payroll.GET("/:id", h.GetById)
		payroll.GET("/:id/payslip/download", h.DownloadPayslip)
		if redisClient != nil {
			payroll.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RequireRole(domain.RoleHR),
				h.Create,
			)
		} else {
			payroll.POST("", middleware.RequireRole(domain.RoleHR), h.Create)
		}
	}
}
