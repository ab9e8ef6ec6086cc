package app

import (
	"database/sql"

	"github.com/dhruv2311-dot/odoo-gcet/internal/attendance"
	"github.com/dhruv2311-dot/odoo-gcet/internal/auth"
	"github.com/dhruv2311-dot/odoo-gcet/internal/document"
	"github.com/dhruv2311-dot/odoo-gcet/internal/export"
	"github.com/dhruv2311-dot/odoo-gcet/internal/leave"
	"github.com/dhruv2311-dot/odoo-gcet/internal/messaging/kafka"
	"github.com/dhruv2311-dot/odoo-gcet/internal/notification"
	"github.com/dhruv2311-dot/odoo-gcet/internal/payroll"
	"github.com/dhruv2311-dot/odoo-gcet/internal/shared/counter"
	"github.com/dhruv2311-dot/odoo-gcet/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	userService := user.NewService(userRepo, counterRepo)
	authService := auth.NewService(userRepo, userService)
	attendanceService := attendance.NewService(db, attendanceRepo)
	notificationService := notification.NewService(notificationRepo)
	leaveService := leave.NewService(db, leaveRepo, attendanceRepo, notificationRepo, userRepo)
	payrollService := payroll.NewService(db, payrollRepo, userRepo, notificationRepo, outboxRepo)
	documentService := document.NewService(db, documentRepo, userRepo)
	exportService := export.NewService(attendanceService, leaveService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	documentHandler := document.NewHandler(documentService)
	exportHandler := export.NewHandler(exportService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
		leave.RegisterRoutes(api, leaveHandler)
		notification.RegisterRoutes(api, notificationHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
		document.RegisterRoutes(api, documentHandler)
		export.RegisterRoutes(api, exportHandler)
	}

	return nil
}
