package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("missing JWT_SECRET is fatal", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		if !errors.Is(err, ErrMissingSecret) {
			t.Errorf("Expected ErrMissingSecret, got %v", err)
		}
	})

	t.Run("defaults apply when only the secret is set", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Addr != ":8000" {
			t.Errorf("Addr: got %s, want :8000", cfg.Addr)
		}
		if cfg.ExpenseAlertRatio != 0.9 {
			t.Errorf("ExpenseAlertRatio: got %f, want 0.9", cfg.ExpenseAlertRatio)
		}
		if !cfg.Development {
			t.Error("Expected development mode by default")
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("ADDR", ":9001")
		t.Setenv("TOKEN_DURATION", "1h")
		t.Setenv("EXPENSE_ALERT_RATIO", "0.5")
		t.Setenv("APP_ENV", "production")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Addr != ":9001" {
			t.Errorf("Addr: got %s, want :9001", cfg.Addr)
		}
		if cfg.TokenDuration != time.Hour {
			t.Errorf("TokenDuration: got %v, want 1h", cfg.TokenDuration)
		}
		if cfg.ExpenseAlertRatio != 0.5 {
			t.Errorf("ExpenseAlertRatio: got %f, want 0.5", cfg.ExpenseAlertRatio)
		}
		if cfg.Development {
			t.Error("Expected production mode")
		}
	})

	t.Run("malformed TOKEN_DURATION is rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("TOKEN_DURATION", "sometime")

		if _, err := Load(); err == nil {
			t.Error("Expected error for malformed duration")
		}
	})
}
