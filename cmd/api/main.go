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

	"github.com/talentops/talentops/internal/api"
	"github.com/talentops/talentops/internal/api/middleware"
	"github.com/talentops/talentops/internal/config"
	"github.com/talentops/talentops/internal/gateway"
	"github.com/talentops/talentops/internal/logger"
	"github.com/talentops/talentops/internal/notify"
	"github.com/talentops/talentops/internal/repository"
	"github.com/talentops/talentops/internal/service"
	"github.com/talentops/talentops/internal/storage"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.ServiceName = "talentops-api"
	appLogger := logger.New(logCfg)
	logger.SetDefault(appLogger)
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	ctx := context.Background()

	// Object storage is optional; without it attachment uploads are rejected
	// but everything else works.
	var objectStorage storage.ObjectStorage
	if cfg.Storage.AccessKey != "" {
		objectStorage, err = storage.NewStorage(&storage.S3Config{
			Type:      storage.StorageType(cfg.Storage.Type),
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize storage")
		}
		if err := objectStorage.(*storage.S3Storage).EnsureBucket(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
		}
	} else {
		appLogger.Warn("No storage credentials configured, attachment uploads disabled")
	}

	gw := gateway.New(db, objectStorage)

	atsService := service.NewATSService(gw)
	payrollService := service.NewPayrollService(gw)
	notificationService := service.NewNotificationService(gw)

	// Change feed: tail the audit log and fan out to subscribers.
	sinks := []notify.Sink{notify.NewChannelSink(cfg.Notify.Buffer)}
	if cfg.Notify.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhookSink(cfg.Notify.WebhookURL))
	}
	poller := notify.NewPoller(
		notify.NewAuditSource(db),
		cfg.Notify.PollInterval,
		cfg.Notify.MaxBackoff,
		sinks...,
	)
	pollerCtx, stopPoller := context.WithCancel(appLogger.WithContext(ctx))
	go func() {
		if err := poller.Run(pollerCtx); err != nil && err != context.Canceled {
			appLogger.WithError(err).Error("Change feed poller stopped")
		}
	}()

	router := api.SetupRouter(
		gw,
		atsService,
		payrollService,
		notificationService,
		appLogger,
		cfg.Server.Mode,
		middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
