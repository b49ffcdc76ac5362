package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pavan8023/webibook-backend/config"
	"github.com/Pavan8023/webibook-backend/database"
	"github.com/Pavan8023/webibook-backend/internal/auditlog"
	"github.com/Pavan8023/webibook-backend/internal/auth"
	"github.com/Pavan8023/webibook-backend/internal/event"
	"github.com/Pavan8023/webibook-backend/internal/eventstatus"
	"github.com/Pavan8023/webibook-backend/internal/notification"
	"github.com/Pavan8023/webibook-backend/internal/registration"
	"github.com/Pavan8023/webibook-backend/internal/reports"
	"github.com/Pavan8023/webibook-backend/middleware"
)

// Services groups the long-lived services main needs after route setup:
// the status sweeper feeds the cron poller and the notification service
// feeds the Kafka consumer.
type Services struct {
	StatusSweeper *eventstatus.Service
	Notifications notification.Service
}

// SetupRoutes wires every repository, service and handler and mounts the
// HTTP surface onto the engine.
func SetupRoutes(r *gin.Engine, cfg *config.Config) *Services {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ✅ Audit Log Module
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ✅ Auth Module
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc, auditSvc)

	// ✅ Event Module
	eventRepo := event.NewRepository(database.DB)
	eventService := event.NewService(eventRepo, auditSvc)
	eventHandler := event.NewHandler(eventService)

	// ✅ Registration Module
	regRepo := registration.NewRepository(database.DB)
	regService := registration.NewService(regRepo, eventService, auditSvc)
	regHandler := registration.NewHandler(regService)

	// ✅ Notification Module
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo, regRepo, eventRepo)
	notifHandler := notification.NewHandler(notifSvc)

	// ✅ Event Status Sweeper
	statusRepo := eventstatus.NewRepository(database.DB)
	statusSvc := eventstatus.NewService(statusRepo, auditSvc)
	statusSvc.Notifier = notifSvc
	statusHandler := eventstatus.NewHandler(statusSvc)

	// ✅ Reports Module
	reportsRepo := reports.NewRepository(database.DB)
	reportsService := reports.NewReportService(reportsRepo, reports.NewReportExporter(), auditSvc)
	reportsHandler := reports.NewHandler(reportsService)

	// 🔓 Public auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.GET("/roles", authHandler.GetPublicRoles)
	}

	// 🔓 Public event discovery
	api.GET("/events/upcoming", eventHandler.GetUpcomingEvents)
	api.GET("/events", eventHandler.ListEvents)
	api.GET("/events/:id", eventHandler.GetEventByID)

	// 🔐 Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// Event management (hosts + superadmin)
	protected.POST("/events",
		middleware.RBACMiddleware(middleware.RoleHost, middleware.RoleSuperAdmin),
		eventHandler.CreateEvent)
	protected.PUT("/events/:id",
		middleware.RBACMiddleware(middleware.RoleHost, middleware.RoleSuperAdmin),
		eventHandler.UpdateEvent)
	protected.DELETE("/events/:id",
		middleware.RBACMiddleware(middleware.RoleHost, middleware.RoleSuperAdmin),
		eventHandler.DeleteEvent)
	protected.GET("/events/mine",
		middleware.RBACMiddleware(middleware.RoleHost, middleware.RoleSuperAdmin),
		eventHandler.ListMyEvents)
	protected.GET("/events/stats",
		middleware.RBACMiddleware(middleware.RoleHost, middleware.RoleSuperAdmin),
		eventHandler.GetEventStats)

	// Registrations
	protected.POST("/events/:id/register",
		middleware.RBACMiddleware(middleware.RoleAttendee, middleware.RoleHost, middleware.RoleSuperAdmin),
		regHandler.Register)
	protected.DELETE("/events/:id/register", regHandler.Cancel)
	protected.GET("/events/:id/attendees",
		middleware.RBACMiddleware(middleware.RoleHost, middleware.RoleSuperAdmin),
		regHandler.ListAttendees)
	protected.GET("/registrations/my", regHandler.MyRegistrations)

	// In-app notifications + device tokens
	notifRoutes := protected.Group("/notifications")
	{
		notifRoutes.GET("", notifHandler.ListMyNotifications)
		notifRoutes.PATCH("/:id/read", notifHandler.MarkAsRead)
		notifRoutes.POST("/devices", notifHandler.RegisterDevice)
		notifRoutes.DELETE("/devices", notifHandler.RemoveDevice)
	}

	// Manual sweep trigger (superadmin only; the cron poller runs it anyway)
	protected.POST("/events/status/sweep",
		middleware.RBACMiddleware(middleware.RoleSuperAdmin),
		statusHandler.SweepNow)

	// Audit logs (superadmin only)
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RBACMiddleware(middleware.RoleSuperAdmin))
	{
		auditRoutes.GET("", auditHandler.ListAuditLogs)
		auditRoutes.GET("/:id", auditHandler.GetAuditLog)
	}

	// Reports (hosts see their own data, superadmin sees everything)
	reportRoutes := protected.Group("/reports")
	reportRoutes.Use(middleware.RBACMiddleware(middleware.RoleHost, middleware.RoleSuperAdmin))
	{
		reportRoutes.GET("/webinars", reportsHandler.WebinarsReport)
		reportRoutes.GET("/events/:id/attendees", reportsHandler.AttendeesReport)
		reportRoutes.GET("/audit-logs", reportsHandler.AuditLogsReport)
	}

	return &Services{
		StatusSweeper: statusSvc,
		Notifications: notifSvc,
	}
}
