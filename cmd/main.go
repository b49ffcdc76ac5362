package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Pavan8023/webibook-backend/config"
	"github.com/Pavan8023/webibook-backend/database"
	"github.com/Pavan8023/webibook-backend/internal/auditlog"
	"github.com/Pavan8023/webibook-backend/internal/auth"
	"github.com/Pavan8023/webibook-backend/internal/event"
	"github.com/Pavan8023/webibook-backend/internal/eventstatus"
	"github.com/Pavan8023/webibook-backend/internal/notification"
	"github.com/Pavan8023/webibook-backend/internal/registration"
	"github.com/Pavan8023/webibook-backend/routes"
	"github.com/Pavan8023/webibook-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(); err != nil {
		log.Printf("⚠️ Redis init failed: %v (continuing without cache)", err)
	}

	// Init Kafka
	utils.InitializeKafka()

	// Init Firebase - single initialization point
	log.Println("🔄 Initializing Firebase...")
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications will be disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized successfully")
	} else {
		log.Println("⚠️ Firebase initialized but FCM client unavailable")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.UserRole{},
		&auth.User{},
		&auditlog.AuditLog{},
		&event.Event{},
		&registration.Registration{},
		&notification.NotificationLog{},
		&notification.InAppNotification{},
		&notification.FCMDeviceToken{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed roles & super admin
	if err := auth.SeedUserRoles(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed roles: %v", err))
	}
	if err := auth.SeedSuperAdminUser(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed Super Admin: %v", err))
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "Cache-Control", "Pragma", "Expires"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	services := routes.SetupRoutes(router, cfg)

	// Kafka consumer for notification fan-out
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	notification.StartKafkaConsumer(consumerCtx, services.Notifications)

	// Server-side status sweep on a cron schedule
	poller := eventstatus.NewPoller(services.StatusSweeper, cfg.SweepSchedule)
	if cfg.SweepEnabled {
		if err := poller.Start(); err != nil {
			panic(fmt.Sprintf("❌ Failed to start status sweep: %v", err))
		}
	} else {
		log.Println("ℹ️ Status sweep disabled via SWEEP_ENABLED")
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 Webibook backend listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	// Graceful shutdown: stop accepting requests, then stop the sweeper and
	// consumer so no half-finished transition writes are abandoned.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🔄 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Server shutdown error: %v", err)
	}

	if cfg.SweepEnabled {
		poller.Stop()
	}
	stopConsumer()

	log.Println("✅ Shutdown complete")
}
