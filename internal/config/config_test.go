package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, k := range []string{"PORT", "API_PORT", "STORE_DRIVER", "EVENTS_ENABLED", "ALERT_SCAN_INTERVAL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.StoreDriver != StoreMongo || !cfg.EventsEnabled {
		t.Fatalf("defaults inesperados: %#v", cfg)
	}
	if cfg.AlertScanInterval != 0 || cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("defaults inesperados: %#v", cfg)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("ALERT_SCAN_INTERVAL", "1h")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()
	if cfg.Port != "9000" || cfg.StoreDriver != StoreMemory || cfg.EventsEnabled {
		t.Fatalf("env ignorado: %#v", cfg)
	}
	if cfg.AlertScanInterval != time.Hour || cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("env ignorado: %#v", cfg)
	}
}

func TestParseHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_DUR", "abc")
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "talvez")
	if parseDuration("X_DUR", time.Second) != time.Second {
		t.Fatal("parseDuration")
	}
	if parseInt("X_INT", 7) != 7 {
		t.Fatal("parseInt")
	}
	if !parseBool("X_BOOL", true) {
		t.Fatal("parseBool")
	}
}

func TestLoadDotenv_FileIsRead(t *testing.T) {
	// dotenvOnce já pode ter rodado em outro teste; exercita godotenv direto
	file := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(file, []byte("SANI_TEST_KEY=valor\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SANI_TEST_KEY", "")
	os.Unsetenv("SANI_TEST_KEY")
	if err := loadFile(file); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("SANI_TEST_KEY"); got != "valor" {
		t.Fatalf("got %q", got)
	}
}
