package config

import (
	"testing"

	"github.com/sbathletics/gridiron-ingest/internal/platform/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected app env: %s", cfg.AppEnv)
	}
	if cfg.ServiceName != "gridiron-ingest" {
		t.Fatalf("unexpected service name: %s", cfg.ServiceName)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
	if cfg.BackfillWorkers != 4 {
		t.Fatalf("unexpected backfill workers: %d", cfg.BackfillWorkers)
	}
}

func TestLoadRejectsBadAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production-ish")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid APP_ENV")
	}
}

func TestLoadWebhookRequiresURL(t *testing.T) {
	t.Setenv("RESULT_WEBHOOK_ENABLED", "true")
	t.Setenv("RESULT_WEBHOOK_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when webhook enabled without URL")
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"WARN":    logging.LevelWarn,
		"warning": logging.LevelWarn,
		"error":   logging.LevelError,
		"":        logging.LevelInfo,
		"bogus":   logging.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q): got=%v want=%v", in, got, want)
		}
	}
}
