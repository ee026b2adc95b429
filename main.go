package main

import (
	"github.com/dongbac/feedback-backend/config"
	"github.com/dongbac/feedback-backend/handlers"
	"github.com/dongbac/feedback-backend/internal/store/csvlog"
	"github.com/dongbac/feedback-backend/internal/store/uploads"
	"github.com/dongbac/feedback-backend/logger"
	"github.com/dongbac/feedback-backend/router"
	"github.com/dongbac/feedback-backend/services"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Storage
	feedbackLog := csvlog.New(cfg.Storage.LogFile)
	fileStorage := uploads.NewLocalFileStorage(cfg.Storage.UploadDir)

	// Services
	notificationService := services.NewNotificationService(&cfg.SMTP)
	submissionService := services.NewSubmissionService(feedbackLog, fileStorage, notificationService)
	healthService := services.NewHealthService(cfg)

	// Handlers
	formHandler := handlers.NewFormHandler(cfg.Storage.MaxUploadFiles)
	feedbackHandler := handlers.NewFeedbackHandler(submissionService, cfg.Storage.MaxUploadFiles, cfg.Storage.MaxUploadBytes)
	healthHandler := handlers.NewHealthHandler(healthService)

	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		FormHandler:     formHandler,
		FeedbackHandler: feedbackHandler,
		HealthHandler:   healthHandler,
		Logger:          log,
	})

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
