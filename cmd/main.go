package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/jamalben22/stadiumport/brackets"
	"github.com/jamalben22/stadiumport/config"
	"github.com/jamalben22/stadiumport/db"
	"github.com/jamalben22/stadiumport/handlers"
	"github.com/jamalben22/stadiumport/repositories"
	api "github.com/jamalben22/stadiumport/routes"
	"github.com/jamalben22/stadiumport/services"
	"github.com/jamalben22/stadiumport/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	wsHub := brackets.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	predictionRepo := repositories.NewPostgresPredictionRepository(dbConn)
	logger.Info("repositories initialized")

	teamService := services.NewTeamService(teamRepo, cloudflareUploader, logger)
	mailService := services.NewMailService(services.MailConfig{
		SendGridAPIKey: cfg.SendGridAPIKey,
		FromAddress:    cfg.MailFrom,
		FromName:       cfg.MailFromName,
		ContactInbox:   cfg.ContactInbox,
		SiteBaseURL:    cfg.SiteBaseURL,
	}, logger)
	authService := services.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, []byte(cfg.JWTSecretKey))
	bracketService := services.NewBracketService(teamService, predictionRepo, mailService, wsHub, logger)
	logger.Info("services initialized")

	// The team catalog backs input validation, so it must be loaded before
	// the server accepts requests.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	if err := teamService.Load(loadCtx); err != nil {
		cancelLoad()
		logger.Error("failed to load team catalog", slog.Any("error", err))
		os.Exit(1)
	}
	cancelLoad()
	logger.Info("team catalog loaded")

	authHandler := handlers.NewAuthHandler(authService)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	predictionHandler := handlers.NewPredictionHandler(bracketService)
	teamHandler := handlers.NewTeamHandler(teamService)
	contactHandler := handlers.NewContactHandler(mailService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.CORSAllowedOrigins,
		[]byte(cfg.JWTSecretKey),
		authHandler,
		bracketHandler,
		predictionHandler,
		teamHandler,
		contactHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
