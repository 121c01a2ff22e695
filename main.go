// File: remindify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"remindify/config"
	"remindify/cron"
	"remindify/database"
	bookingRepo "remindify/database/repository/booking"
	reminderRepo "remindify/database/repository/reminder"
	"remindify/handlers"
	"remindify/middleware"
	"remindify/routes"
	"remindify/services/dispatch"
	"remindify/services/i18n"
	"remindify/services/mailer"
	"remindify/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	resolver, err := i18n.NewDefaultTranslatorResolver()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load translation catalogs: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	reminders := reminderRepo.NewMongoReminderRepo()

	// services.
	smtpMailer := &mailer.SMTPMailer{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		Username: config.AppConfig.SMTPUsername,
		Password: config.AppConfig.SMTPPassword,
		From:     config.AppConfig.SMTPFrom,
	}
	sender, err := mailer.NewDefaultNotificationSender(smtpMailer, utils.FCMClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification sender: %v", err)
	}

	dispatchService := &dispatch.DefaultDispatchService{
		Bookings:  bookings,
		Reminders: reminders,
		Resolver:  resolver,
		Sender:    sender,
		Cache:     utils.GetCacheClient(),
		Logger:    logger,
	}

	cronHandler := handlers.NewCronHandler(dispatchService, logger)

	// Register routes.
	routes.RegisterRoutes(router, cronHandler)

	// Background periodic dispatch and health monitoring.
	cron.InitDispatchWorker(dispatchService)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
