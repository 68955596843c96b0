package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Addr() != ":8080" {
		t.Errorf("unexpected addr %s", cfg.Server.Addr())
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("unexpected request timeout: %s", cfg.Server.RequestTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %s", cfg.LogLevel)
	}
	if cfg.Dev {
		t.Errorf("dev mode should default to false")
	}
	if cfg.Site.BaseURL != "" {
		t.Errorf("expected no base url override, got %s", cfg.Site.BaseURL)
	}
}

func TestLoadPortFallsBackToPlatformPort(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{"PORT": "9090"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected PORT fallback, got %s", cfg.Server.Port)
	}

	cfg, err = Load(WithEnvMap(map[string]string{
		"PORT":                  "9090",
		"LICHESSAI_SERVER_PORT": "7070",
	}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("expected prefixed port to win, got %s", cfg.Server.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	env := map[string]string{
		"LICHESSAI_DEV":                    "true",
		"LICHESSAI_TEMPLATES_DIR":          "internal/view/templates",
		"LICHESSAI_LOG_LEVEL":              "DEBUG",
		"LICHESSAI_SITE_BASE_URL":          "https://example.org/",
		"LICHESSAI_SERVER_REQUEST_TIMEOUT": "5s",
	}
	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.Dev {
		t.Errorf("expected dev mode")
	}
	if cfg.TemplatesDir != "internal/view/templates" {
		t.Errorf("unexpected templates dir %q", cfg.TemplatesDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected normalised log level, got %q", cfg.LogLevel)
	}
	if cfg.Site.BaseURL != "https://example.org" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.Site.BaseURL)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("unexpected request timeout %s", cfg.Server.RequestTimeout)
	}
}

func TestLoadReportsInvalidFields(t *testing.T) {
	env := map[string]string{
		"LICHESSAI_SERVER_PORT":   "http",
		"LICHESSAI_SITE_BASE_URL": "lichess.ai",
		"LICHESSAI_LOG_LEVEL":     "loud",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	want := []string{"LICHESSAI_LOG_LEVEL", "LICHESSAI_SERVER_PORT", "LICHESSAI_SITE_BASE_URL"}
	got := verr.Fields()
	if len(got) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected fields %v, got %v", want, got)
		}
	}
}

func TestLoadReadsDotEnvWithLowerPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	contents := "LICHESSAI_SERVER_PORT=6060\nLICHESSAI_LOG_LEVEL=warn\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(
		WithEnvFile(path),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{"LICHESSAI_LOG_LEVEL": "error"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "6060" {
		t.Errorf("expected port from dotenv, got %s", cfg.Server.Port)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected env map to override dotenv, got %s", cfg.LogLevel)
	}
}

func TestLoadIgnoresMissingDotEnv(t *testing.T) {
	_, err := Load(WithEnvFile(filepath.Join(t.TempDir(), "missing.env")), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("missing env file should be ignored, got %v", err)
	}
}
