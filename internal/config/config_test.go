package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HasAPIURL() {
		t.Errorf("expected no api url, got %q", cfg.APIURL)
	}
	if cfg.Timeout != 0 {
		t.Errorf("expected no timeout, got %v", cfg.Timeout)
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")

	dir := t.TempDir()
	writeConfig(t, dir, "api_url = \" http://10.0.0.5:8080/api \"\ntimeout = \"3s\"\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.5:8080/api" {
		t.Errorf("expected api url from file, got %q", cfg.APIURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.Timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "api_url = \"http://file/api\"\n")
	t.Setenv(EnvAPIURL, "http://env/api")
	t.Setenv(EnvTimeout, "250ms")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://env/api" {
		t.Errorf("expected env api url, got %q", cfg.APIURL)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Errorf("expected 250ms timeout, got %v", cfg.Timeout)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")

	dir := t.TempDir()
	writeConfig(t, dir, "api_url = \n")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed config.toml")
	}
}

func TestLoad_NegativeTimeout(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "-1s")

	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("unexpected config dir %q", got)
	}
}
