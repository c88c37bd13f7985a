package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dantte-lp/goradius/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if cfg.Server.AuthAddr != ":1812" {
		t.Errorf("Server.AuthAddr = %q, want %q", cfg.Server.AuthAddr, ":1812")
	}

	if cfg.Server.AcctAddr != ":1813" {
		t.Errorf("Server.AcctAddr = %q, want %q", cfg.Server.AcctAddr, ":1813")
	}

	if cfg.Client.RetryCount != 3 {
		t.Errorf("Client.RetryCount = %d, want %d", cfg.Client.RetryCount, 3)
	}

	if cfg.Client.Timeout != 3*time.Second {
		t.Errorf("Client.Timeout = %v, want %v", cfg.Client.Timeout, 3*time.Second)
	}

	if cfg.Metrics.Addr != ":9111" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9111")
	}

	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/metrics")
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}

	// Defaults must pass validation.
	if err := config.Validate(cfg); err != nil {
		t.Errorf("DefaultConfig() failed validation: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	yamlContent := `
server:
  auth_addr: ":11812"
  acct_addr: ":11813"
client:
  retry_count: 5
  timeout: "1500ms"
metrics:
  addr: ":9200"
  path: "/custom-metrics"
log:
  level: "debug"
  format: "text"
auth:
  validate_by_ldap: true
ldap:
  path: "dc1.example.com:389"
  domain_name: "example.com"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Server.AuthAddr != ":11812" {
		t.Errorf("Server.AuthAddr = %q, want %q", cfg.Server.AuthAddr, ":11812")
	}

	if cfg.Server.AcctAddr != ":11813" {
		t.Errorf("Server.AcctAddr = %q, want %q", cfg.Server.AcctAddr, ":11813")
	}

	if cfg.Client.RetryCount != 5 {
		t.Errorf("Client.RetryCount = %d, want %d", cfg.Client.RetryCount, 5)
	}

	if cfg.Client.Timeout != 1500*time.Millisecond {
		t.Errorf("Client.Timeout = %v, want %v", cfg.Client.Timeout, 1500*time.Millisecond)
	}

	if cfg.Metrics.Addr != ":9200" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9200")
	}

	if cfg.Metrics.Path != "/custom-metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/custom-metrics")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}

	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}

	if !cfg.Auth.ValidateByLDAP {
		t.Error("Auth.ValidateByLDAP = false, want true")
	}

	if cfg.LDAP.Path != "dc1.example.com:389" {
		t.Errorf("LDAP.Path = %q, want %q", cfg.LDAP.Path, "dc1.example.com:389")
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	t.Parallel()

	// Partial YAML: only override server.auth_addr and log.level.
	// Everything else should inherit from defaults.
	yamlContent := `
server:
  auth_addr: ":15555"
log:
  level: "warn"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	// Overridden values.
	if cfg.Server.AuthAddr != ":15555" {
		t.Errorf("Server.AuthAddr = %q, want %q", cfg.Server.AuthAddr, ":15555")
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}

	// Default values should be preserved.
	if cfg.Server.AcctAddr != ":1813" {
		t.Errorf("Server.AcctAddr = %q, want default %q", cfg.Server.AcctAddr, ":1813")
	}

	if cfg.Client.RetryCount != 3 {
		t.Errorf("Client.RetryCount = %d, want default %d", cfg.Client.RetryCount, 3)
	}

	if cfg.Metrics.Addr != ":9111" {
		t.Errorf("Metrics.Addr = %q, want default %q", cfg.Metrics.Addr, ":9111")
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want default %q", cfg.Log.Format, "json")
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr error
	}{
		{
			name: "empty auth addr",
			modify: func(cfg *config.Config) {
				cfg.Server.AuthAddr = ""
			},
			wantErr: config.ErrEmptyAuthAddr,
		},
		{
			name: "empty acct addr",
			modify: func(cfg *config.Config) {
				cfg.Server.AcctAddr = ""
			},
			wantErr: config.ErrEmptyAcctAddr,
		},
		{
			name: "zero retry count",
			modify: func(cfg *config.Config) {
				cfg.Client.RetryCount = 0
			},
			wantErr: config.ErrInvalidRetryCount,
		},
		{
			name: "zero timeout",
			modify: func(cfg *config.Config) {
				cfg.Client.Timeout = 0
			},
			wantErr: config.ErrInvalidTimeout,
		},
		{
			name: "negative timeout",
			modify: func(cfg *config.Config) {
				cfg.Client.Timeout = -1 * time.Second
			},
			wantErr: config.ErrInvalidTimeout,
		},
		{
			name: "ldap enabled without path",
			modify: func(cfg *config.Config) {
				cfg.Auth.ValidateByLDAP = true
				cfg.LDAP.Path = ""
			},
			wantErr: config.ErrLDAPPathRequired,
		},
		{
			name: "database enabled without connection",
			modify: func(cfg *config.Config) {
				cfg.Auth.ValidateByDatabase = true
				cfg.Database.Connection = ""
			},
			wantErr: config.ErrDatabaseConnectionRequired,
		},
		{
			name: "nas entry with empty secret",
			modify: func(cfg *config.Config) {
				cfg.NAS = map[string]config.NASConfig{
					"10.0.0.1": {SecretKey: ""},
				}
			},
			wantErr: config.ErrEmptyNASSecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.modify(cfg)

			err := config.Validate(cfg)
			if err == nil {
				t.Fatal("Validate() returned nil, want error")
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNASSettingsOK(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.NAS = map[string]config.NASConfig{
		"10.0.0.1": {SecretKey: "s3cr3t"},
		"10.0.0.2": {SecretKey: "an0ther"},
	}

	if err := config.Validate(cfg); err != nil {
		t.Errorf("Validate() returned error: %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "WARN", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "Error", want: slog.LevelError},
		{input: "unknown", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "trace", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := config.ParseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/path/config.yml")
	if err == nil {
		t.Fatal("Load() returned nil error for nonexistent file")
	}
}

// -------------------------------------------------------------------------
// Environment Variable Override Tests
// -------------------------------------------------------------------------

func TestLoadEnvOverrides(t *testing.T) {
	// Environment variable tests cannot be parallel because they modify
	// process-wide state (os.Setenv).

	yamlContent := `
server:
  auth_addr: ":1812"
log:
  level: "info"
`
	path := writeTemp(t, yamlContent)

	t.Setenv("RADIUSD_SERVER_AUTH_ADDR", ":21812")
	t.Setenv("RADIUSD_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Server.AuthAddr != ":21812" {
		t.Errorf("Server.AuthAddr = %q, want %q (from env)", cfg.Server.AuthAddr, ":21812")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q (from env)", cfg.Log.Level, "debug")
	}
}

func TestLoadEnvOverridesMetrics(t *testing.T) {
	yamlContent := `
server:
  auth_addr: ":1812"
metrics:
  addr: ":9111"
  path: "/metrics"
`
	path := writeTemp(t, yamlContent)

	t.Setenv("RADIUSD_METRICS_ADDR", ":9222")
	t.Setenv("RADIUSD_METRICS_PATH", "/custom")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Metrics.Addr != ":9222" {
		t.Errorf("Metrics.Addr = %q, want %q (from env)", cfg.Metrics.Addr, ":9222")
	}

	if cfg.Metrics.Path != "/custom" {
		t.Errorf("Metrics.Path = %q, want %q (from env)", cfg.Metrics.Path, "/custom")
	}
}

// writeTemp creates a temporary YAML file and returns its path.
// The file is automatically cleaned up when the test finishes.
func writeTemp(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "radiusd.yml")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	return path
}
