package app

import (
	"os"

	"github.com/dhruv2311-dot/odoo-gcet/internal/attendance"
	"github.com/dhruv2311-dot/odoo-gcet/internal/document"
	"github.com/dhruv2311-dot/odoo-gcet/internal/leave"
	"github.com/dhruv2311-dot/odoo-gcet/internal/messaging/kafka"
	"github.com/dhruv2311-dot/odoo-gcet/internal/middleware"
	"github.com/dhruv2311-dot/odoo-gcet/internal/notification"
	"github.com/dhruv2311-dot/odoo-gcet/internal/payroll"
	"github.com/dhruv2311-dot/odoo-gcet/internal/shared/connection"
	"github.com/dhruv2311-dot/odoo-gcet/internal/shared/counter"
	"github.com/dhruv2311-dot/odoo-gcet/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := gormDB.AutoMigrate(
		&user.User{},
		&attendance.Attendance{},
		&leave.Leave{},
		&payroll.Payroll{},
		&document.Document{},
		&notification.Notification{},
		&counter.SequenceCounter{},
		&kafka.OutboxEventRecord{},
	); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	return registerModules(router, sqlDB, gormDB, redisClient)
}
