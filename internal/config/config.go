// Package config handles runtime configuration for the finwiser server.
// Values come from the environment, with an optional .env overlay for
// local development.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/finwiser/finwiser/internal/auth"
)

// ErrMissingSecret is returned when JWT_SECRET is unset. There is
// deliberately no fallback key.
var ErrMissingSecret = errors.New("JWT_SECRET must be set")

// Config holds runtime settings for the finwiser server.
//
// Fields:
//   - Addr: bind address for the HTTP server.
//   - DBPath: SQLite database file path.
//   - JWTSecret: HMAC secret for signing tokens (HS256). Mandatory.
//   - TokenDuration: how long issued tokens remain valid.
//   - UploadDir: directory for locally stored document files.
//   - S3Endpoint / S3Bucket / S3Region / S3AccessKey / S3SecretKey:
//     S3-compatible object storage; documents use S3 when S3Bucket is set.
//   - ExpenseAlertRatio: expenses/income ratio above which insights raise
//     an alert.
//   - Development: include error details meant for developers in responses.
type Config struct {
	Addr              string
	DBPath            string
	JWTSecret         string
	TokenDuration     time.Duration
	UploadDir         string
	S3Endpoint        string
	S3Bucket          string
	S3Region          string
	S3AccessKey       string
	S3SecretKey       string
	ExpenseAlertRatio float64
	Development       bool
}

// Load builds a Config from the environment. A .env file in the working
// directory is applied first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:              getEnv("ADDR", ":8000"),
		DBPath:            getEnv("DB_PATH", "./data/finwiser.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenDuration:     auth.DefaultTokenDuration,
		UploadDir:         getEnv("UPLOAD_DIR", "./data/uploads"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:       os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:       os.Getenv("S3_SECRET_KEY"),
		ExpenseAlertRatio: 0.9,
		Development:       getEnv("APP_ENV", "development") != "production",
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}

	if v := os.Getenv("TOKEN_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, err
		}
		cfg.TokenDuration = d
	}

	if v := os.Getenv("EXPENSE_ALERT_RATIO"); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		cfg.ExpenseAlertRatio = ratio
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
