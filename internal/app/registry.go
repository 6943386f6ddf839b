package app

import (
	"database/sql"

	"farmstaff/internal/attendance"
	"farmstaff/internal/auth"
	"farmstaff/internal/invite"
	"farmstaff/internal/leave"
	"farmstaff/internal/leavebalance"
	"farmstaff/internal/messaging/kafka"
	"farmstaff/internal/notify"
	"farmstaff/internal/payroll"
	"farmstaff/internal/rbac"
	"farmstaff/internal/shared/counter"
	"farmstaff/internal/staff"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	mailer notify.Mailer,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	inviteRepo := invite.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo)
	authService := auth.NewService(authRepo)
	balanceService := leavebalance.NewService(db, balanceRepo)
	inviteService := invite.NewService(db, inviteRepo, staffRepo, authRepo, counterRepo, outboxRepo, mailer)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, balanceRepo, outboxRepo, mailer)
	payrollService := payroll.NewService(db, payrollRepo)
	staffService := staff.NewService(db, staffRepo, counterRepo, outboxRepo, rdb)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService)
	balanceHandler := leavebalance.NewHandler(balanceService)
	inviteHandler := invite.NewHandler(inviteService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	staffHandler := staff.NewHandler(staffService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		invite.RegisterRoutes(api, inviteHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		leavebalance.RegisterRoutes(api, balanceHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		staff.RegisterRoutes(api, staffHandler, rbacService)
	}

	return nil
}
