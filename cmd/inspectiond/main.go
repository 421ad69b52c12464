package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phone-inspection-backend/config"
	"phone-inspection-backend/internal/api"
	"phone-inspection-backend/internal/blob"
	"phone-inspection-backend/internal/db"
	"phone-inspection-backend/internal/report"
	"phone-inspection-backend/internal/session"
	"phone-inspection-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "inspection-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	appStore := store.NewGormStore(gormDB)
	sessions := session.NewManager(cfg.Session.TTL)

	var uploader blob.Uploader
	if cfg.Blob.Enabled {
		s3Uploader, err := blob.NewS3Uploader(context.Background(), cfg.Blob)
		if err != nil {
			logger.Fatalf("failed to initialize blob storage: %v", err)
		}
		uploader = s3Uploader
		logger.Printf("blob storage initialized (bucket %s)", cfg.Blob.Bucket)
	} else {
		uploader = blob.NewMemoryUploader()
		logger.Println("blob storage not configured, using in-memory store")
	}

	var renderer report.Renderer
	switch cfg.Report.Mode {
	case "excel":
		renderer = &report.ExcelRenderer{
			ScriptPath: cfg.Report.ScriptPath,
			TempDir:    cfg.Report.TempDir,
			Uploader:   uploader,
		}
	case "inline":
		renderer = report.InlineRenderer{}
	default:
		logger.Fatalf("unknown report mode %q", cfg.Report.Mode)
	}
	exporter := report.NewExporter(appStore, renderer)

	router := api.NewRouter(appStore, sessions, uploader, exporter, cfg)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
