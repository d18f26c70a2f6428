package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/docuvia/docuvia-api/internal/config"
	"github.com/docuvia/docuvia-api/internal/database"
	"github.com/docuvia/docuvia-api/internal/handler"
	"github.com/docuvia/docuvia-api/internal/middleware"
	"github.com/docuvia/docuvia-api/internal/models"
	"github.com/docuvia/docuvia-api/internal/repository"
	"github.com/docuvia/docuvia-api/internal/router"
	"github.com/docuvia/docuvia-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Document{},
		&models.DocumentVersion{},
		&models.ApprovalRecord{},
		&models.AuditAction{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	userService := service.NewUserService(userRepo, validate, logger)
	documentService := service.NewDocumentService(documentRepo, userRepo, notificationRepo, validate, logger)
	approvalService := service.NewApprovalService(approvalRepo, documentRepo, userRepo, notificationRepo, validate, logger)
	auditService := service.NewAuditService(auditRepo, userRepo, validate, logger)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, validate, logger)

	userHandler := handler.NewUserHandler(userService, logger)
	documentHandler := handler.NewDocumentHandler(documentService, logger)
	approvalHandler := handler.NewApprovalHandler(approvalService, logger)
	auditHandler := handler.NewAuditHandler(auditService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		UserHandler:         userHandler,
		DocumentHandler:     documentHandler,
		ApprovalHandler:     approvalHandler,
		AuditHandler:        auditHandler,
		NotificationHandler: notificationHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
