// File: clinvetia/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinvetia/config"
	"clinvetia/cron"
	"clinvetia/database"
	bookingRepoPkg "clinvetia/database/repository/booking"
	contactRepoPkg "clinvetia/database/repository/contact"
	conversationRepoPkg "clinvetia/database/repository/conversation"
	sessionRepoPkg "clinvetia/database/repository/session"
	"clinvetia/handlers"
	"clinvetia/routes"
	"clinvetia/services/assistant"
	"clinvetia/services/availability"
	"clinvetia/services/booking"
	"clinvetia/services/cleanup"
	"clinvetia/services/contact"
	"clinvetia/services/notification"
	"clinvetia/services/roi"
	"clinvetia/services/verify"
	"clinvetia/services/whatsapp"
	"clinvetia/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	contactRepo := contactRepoPkg.NewMongoContactRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	conversationRepo := conversationRepoPkg.NewMongoConversationRepo()

	for name, ensure := range map[string]func() error{
		"bookings":      bookingRepo.EnsureIndexes,
		"contacts":      contactRepo.EnsureIndexes,
		"sessions":      sessionRepo.EnsureIndexes,
		"conversations": conversationRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// background email worker + queue client.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	cron.InitEmailWorker(bookingRepo, notification.LogMailer{})

	// services.
	verifier := verify.NewRecaptchaVerifier()
	notifier := notification.NewAsynqNotifier(asynqClient)

	cleanupService := &cleanup.DefaultService{
		Contacts: contactRepo,
		Sessions: sessionRepo,
	}
	availabilityService := &availability.DefaultService{
		Bookings: bookingRepo,
	}
	bookingService := &booking.DefaultService{
		Repo:     bookingRepo,
		Contacts: contactRepo,
		Verifier: verifier,
		Cleanup:  cleanupService,
		Notifier: notifier,
		MinScore: config.AppConfig.RecaptchaMinScore,
	}
	contactService := &contact.DefaultService{
		Repo:     contactRepo,
		Cleanup:  cleanupService,
		Notifier: notifier,
	}
	roiSessionService := &roi.DefaultSessionService{
		Repo:     sessionRepo,
		Verifier: verifier,
		MinScore: config.AppConfig.RecaptchaMinScore,
	}
	whatsappService := &whatsapp.DefaultService{
		Conversations: conversationRepoPkg.NewCachedConversationRepo(conversationRepo, utils.GetCacheClient()),
		Brain:         assistant.NewHTTPBrain(),
		Transport:     whatsapp.NewCloudAPIClient(),
		ROISessions:   roiSessionService,
		Dedupe:        utils.GetCacheClient(),
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService, availabilityService),
		Contact:  handlers.NewContactHandler(contactService),
		ROI:      handlers.NewROIHandler(roiSessionService),
		WhatsApp: handlers.NewWhatsAppHandler(whatsappService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
