package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeConfig(t, "server_url = \"http://books.local:9000\"\ntimeout_seconds = 3\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "http://books.local:9000" {
		t.Fatalf("ServerURL = %q, want http://books.local:9000", cfg.ServerURL)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Fatalf("Timeout = %v, want 3s", cfg.Timeout())
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != defaultServerURL {
		t.Fatalf("ServerURL = %q, want default", cfg.ServerURL)
	}
	if cfg.TimeoutSeconds != defaultTimeoutSeconds {
		t.Fatalf("TimeoutSeconds = %d, want default", cfg.TimeoutSeconds)
	}
}

func TestLoad_BlankAndZeroFieldsFallBack(t *testing.T) {
	path := writeConfig(t, "server_url = \"  \"\ntimeout_seconds = 0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != defaultServerURL || cfg.TimeoutSeconds != defaultTimeoutSeconds {
		t.Fatalf("cfg = %+v, want defaults for blank fields", cfg)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server_url = \"http://books.local:9000\"\n")
	t.Setenv("LIBDESK_SERVER_URL", "http://other.local:8080")
	t.Setenv("LIBDESK_TIMEOUT_SECONDS", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "http://other.local:8080" {
		t.Fatalf("ServerURL = %q, want env override", cfg.ServerURL)
	}
	if cfg.TimeoutSeconds != 7 {
		t.Fatalf("TimeoutSeconds = %d, want 7", cfg.TimeoutSeconds)
	}
}

func TestLoad_RejectsBadTimeoutEnv(t *testing.T) {
	t.Setenv("LIBDESK_TIMEOUT_SECONDS", "soon")

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("Load returned nil error, want invalid env error")
	}
}

func TestLoad_BadTOML(t *testing.T) {
	path := writeConfig(t, "server_url = [broken\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
}
