package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finwiser/finwiser/internal/auth"
	"github.com/finwiser/finwiser/internal/blob"
	"github.com/finwiser/finwiser/internal/config"
	"github.com/finwiser/finwiser/internal/handlers"
	"github.com/finwiser/finwiser/internal/insights"
	"github.com/finwiser/finwiser/internal/middleware"
	"github.com/finwiser/finwiser/internal/storage/sqlite"
	"github.com/finwiser/finwiser/pkg/logging"
)

func main() {
	// Setup structured logging
	logging.Setup()
	logger := slog.Default()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	// Document binaries go to S3 when a bucket is configured, local disk otherwise.
	var files blob.FileStore
	if cfg.S3Bucket != "" {
		files, err = blob.NewS3Store(context.Background(), blob.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			logger.Error("Failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		logger.Info("Document storage initialized", "backend", "s3", "bucket", cfg.S3Bucket)
	} else {
		files, err = blob.NewLocalStore(cfg.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize upload directory", "error", err)
			os.Exit(1)
		}
		logger.Info("Document storage initialized", "backend", "local", "dir", cfg.UploadDir)
	}

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	advisor := insights.Advisor{ExpenseAlertRatio: cfg.ExpenseAlertRatio}

	mux := http.NewServeMux()
	h := handlers.New(store, authenticator, jwtManager, files, advisor, logger, cfg.Development)
	h.Routes(mux)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Add logging, metrics, and CORS middleware
	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	logger.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
