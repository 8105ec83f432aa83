package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/audit"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/config"
	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/handlers"
	infraCache "github.com/lucasmarins-seget/agendamento-seget-back/internal/infra/cache"
	infraRepo "github.com/lucasmarins-seget/agendamento-seget-back/internal/infra/repository"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/mailer"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/metrics"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/middleware"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/roomlock"
	ucAttendance "github.com/lucasmarins-seget/agendamento-seget-back/internal/usecase/attendance"
	ucBooking "github.com/lucasmarins-seget/agendamento-seget-back/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	cache *infraCache.OccupancyCache,
	mail *mailer.Dispatcher,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	attendanceStore := infraRepo.NewAttendanceGormStore(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	locks := roomlock.New()

	window, err := domain.NewEscolaWindow(cfg.EscolaWindowStart, cfg.EscolaWindowEnd)
	if err != nil {
		logger.Fatal("invalid escola window configuration", zap.Error(err))
	}
	rules := ucBooking.Rules{
		EscolaWindow:       window,
		DefaultLabCapacity: cfg.DefaultLabCapacity,
	}

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		locks,
		mail,
		cache,
		auditDispatcher,
		m,
		rules,
		logger,
	)

	occupiedHoursUC := ucBooking.NewOccupiedHours(bookingRepo, cache, rules)
	searchBookingsUC := ucBooking.NewSearchBookings(bookingRepo)
	getPublicBookingUC := ucBooking.NewGetPublicBooking(bookingRepo)

	listAdminUC := ucBooking.NewListAdminBookings(bookingRepo)
	getAdminUC := ucBooking.NewGetAdminBooking(bookingRepo)

	approveUC := ucBooking.NewApproveBooking(bookingRepo, mail, cache, auditDispatcher, m)
	rejectUC := ucBooking.NewRejectBooking(bookingRepo, mail, cache, auditDispatcher, m)
	analyzeUC := ucBooking.NewAnalyzeBooking(bookingRepo, mail, auditDispatcher)
	approvePartialUC := ucBooking.NewApprovePartialBooking(bookingRepo, mail, cache, auditDispatcher, m)

	attendanceSheetUC := ucBooking.NewAttendanceSheet(bookingRepo)
	confirmAttendanceUC := ucAttendance.NewConfirmAttendance(bookingRepo, attendanceStore)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	publicHandler := handlers.NewBookingPublicHandler(
		createBookingUC,
		searchBookingsUC,
		getPublicBookingUC,
		occupiedHoursUC,
	)

	adminHandler := handlers.NewBookingAdminHandler(
		listAdminUC,
		getAdminUC,
		approveUC,
		rejectUC,
		analyzeUC,
		approvePartialUC,
		attendanceSheetUC,
	)

	attendanceHandler := handlers.NewAttendanceHandler(confirmAttendanceUC)
	employeeHandler := handlers.NewEmployeeHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db, auditDispatcher)
	adminUserHandler := handlers.NewAdminUserHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.POST("/bookings", publicHandler.Create)
		api.GET("/bookings", publicHandler.Search)
		api.GET("/bookings/:id", publicHandler.GetByID)
		api.GET("/occupied-hours", publicHandler.OccupiedHours)

		api.POST("/bookings/:id/confirm", attendanceHandler.Confirm)

		api.GET("/employees", employeeHandler.List)
		api.GET("/blocks", settingsHandler.ListBlocks)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (PAINEL)
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/me", authHandler.Me)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			admin.GET("/bookings", adminHandler.List)
			admin.GET("/bookings/:id", adminHandler.Details)
			admin.PATCH("/bookings/:id/approve", adminHandler.Approve)
			admin.PATCH("/bookings/:id/reject", adminHandler.Reject)
			admin.PATCH("/bookings/:id/analyze", adminHandler.Analyze)
			admin.PATCH("/bookings/:id/approve-partial", adminHandler.ApprovePartial)

			admin.GET("/bookings/:id/attendance", adminHandler.Attendance)
			admin.GET("/bookings/:id/attendance/pdf", adminHandler.AttendancePDF)

			// ------------------------------
			// BLOQUEIOS / CAPACIDADE
			// ------------------------------
			admin.POST("/blocks", settingsHandler.CreateBlock)
			admin.DELETE("/blocks/:id", settingsHandler.DeleteBlock)

			admin.GET("/settings/computers", settingsHandler.GetComputers)
			admin.PUT("/settings/computers", settingsHandler.UpdateComputers)

			// ------------------------------
			// SERVIDORES
			// ------------------------------
			admin.POST("/employees", employeeHandler.Create)
			admin.PUT("/employees/:id", employeeHandler.Update)
			admin.DELETE("/employees/:id", employeeHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// USUÁRIOS (SÓ SUPER ADMIN)
			// ------------------------------
			users := admin.Group("/users")
			users.Use(middleware.SuperAdminOnly())
			{
				users.GET("", adminUserHandler.List)
				users.POST("", adminUserHandler.Create)
				users.PATCH("/:id", adminUserHandler.Update)
				users.DELETE("/:id", adminUserHandler.Delete)
			}
		}
	}
}
