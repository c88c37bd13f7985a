package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete goradius daemon configuration.
type Config struct {
	Server   ServerConfig         `koanf:"server"`
	Client   ClientConfig         `koanf:"client"`
	Metrics  MetricsConfig        `koanf:"metrics"`
	Log      LogConfig            `koanf:"log"`
	Auth     AuthConfig           `koanf:"auth"`
	LDAP     LDAPConfig           `koanf:"ldap"`
	Database DatabaseConfig       `koanf:"database"`
	NAS      map[string]NASConfig `koanf:"nas_settings"`
}

// ServerConfig holds the RADIUS server socket configuration.
type ServerConfig struct {
	// AuthAddr is the authentication listen address (e.g., ":1812").
	AuthAddr string `koanf:"auth_addr"`
	// AcctAddr is the accounting listen address (e.g., ":1813").
	AcctAddr string `koanf:"acct_addr"`
}

// ClientConfig holds the RADIUS client loop defaults.
type ClientConfig struct {
	// RetryCount is the number of send attempts before CommunicationFailure.
	RetryCount int `koanf:"retry_count"`
	// Timeout is the per-attempt receive timeout.
	Timeout time.Duration `koanf:"timeout"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g., ":9111").
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// AuthConfig selects which authentication paths the server enables.
type AuthConfig struct {
	// ValidateByLDAP enables the ExternalAuthenticator path.
	ValidateByLDAP bool `koanf:"validate_by_ldap"`
	// ValidateByDatabase enables the CredentialStore path.
	ValidateByDatabase bool `koanf:"validate_by_database"`
}

// LDAPConfig configures the ExternalAuthenticator LDAP backend.
type LDAPConfig struct {
	// Path is the LDAP/AD server address, host:port.
	Path string `koanf:"path"`
	// DomainName is the domain suffix used to build the bind principal.
	DomainName string `koanf:"domain_name"`
	// UseTLS selects LDAPS over plain LDAP.
	UseTLS bool `koanf:"use_tls"`
}

// DatabaseConfig configures the SQL CredentialStore backend. Both fields
// are opaque to the RADIUS core; they are passed through unexamined to
// the collaborator.
type DatabaseConfig struct {
	// Connection is a pgx connection string.
	Connection string `koanf:"connection"`
	// PasswordSQL is a query with one positional parameter (the user
	// name) that selects one text column (the clear-text password).
	PasswordSQL string `koanf:"password_sql"`
}

// NASConfig describes one entry of the nas_settings map: client IP
// (dotted-quad) -> shared secret.
type NASConfig struct {
	SecretKey string `koanf:"secret_key"`
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with sensible defaults.
//
// Default ports follow RFC 2865/2866: 1812/udp for authentication,
// 1813/udp for accounting.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			AuthAddr: ":1812",
			AcctAddr: ":1813",
		},
		Client: ClientConfig{
			RetryCount: 3,
			Timeout:    3 * time.Second,
		},
		Metrics: MetricsConfig{
			Addr: ":9111",
			Path: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for goradius configuration.
// Variables are named RADIUSD_<section>_<key>, e.g., RADIUSD_SERVER_AUTH_ADDR.
const envPrefix = "RADIUSD_"

// Load reads configuration from a YAML file at path, overlays environment
// variable overrides (RADIUSD_ prefix), and merges on top of
// DefaultConfig(). Missing fields inherit defaults.
//
// Environment variable mapping:
//
//	RADIUSD_SERVER_AUTH_ADDR -> server.auth_addr
//	RADIUSD_METRICS_ADDR     -> metrics.addr
//	RADIUSD_LOG_LEVEL        -> log.level
//	RADIUSD_AUTH_VALIDATE_BY_LDAP -> auth.validate_by_ldap
//
// Uses koanf/v2 with file + env providers and YAML parser.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Load defaults first.
	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	// Load YAML file on top of defaults.
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config from %s: %w", path, err)
	}

	// Load environment variable overrides on top of YAML.
	// RADIUSD_SERVER_AUTH_ADDR -> server.auth_addr (strip prefix, lowercase, first _ -> .).
	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

// envKeyMapper transforms RADIUSD_SERVER_AUTH_ADDR -> server.auth_addr.
// Strips the RADIUSD_ prefix, lowercases, and replaces the first _ (the
// section separator) with .; later underscores stay part of the key name.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.Replace(s, "_", ".", 1)
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"server.auth_addr":   defaults.Server.AuthAddr,
		"server.acct_addr":   defaults.Server.AcctAddr,
		"client.retry_count": defaults.Client.RetryCount,
		"client.timeout":     defaults.Client.Timeout.String(),
		"metrics.addr":       defaults.Metrics.Addr,
		"metrics.path":       defaults.Metrics.Path,
		"log.level":          defaults.Log.Level,
		"log.format":         defaults.Log.Format,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrEmptyAuthAddr indicates the authentication listen address is empty.
	ErrEmptyAuthAddr = errors.New("server.auth_addr must not be empty")

	// ErrEmptyAcctAddr indicates the accounting listen address is empty.
	ErrEmptyAcctAddr = errors.New("server.acct_addr must not be empty")

	// ErrInvalidRetryCount indicates the client retry count is not positive.
	ErrInvalidRetryCount = errors.New("client.retry_count must be >= 1")

	// ErrInvalidTimeout indicates the client receive timeout is not positive.
	ErrInvalidTimeout = errors.New("client.timeout must be > 0")

	// ErrLDAPPathRequired indicates validate_by_ldap is set but ldap.path is empty.
	ErrLDAPPathRequired = errors.New("ldap.path is required when auth.validate_by_ldap is true")

	// ErrDatabaseConnectionRequired indicates validate_by_database is set
	// but database.connection is empty.
	ErrDatabaseConnectionRequired = errors.New("database.connection is required when auth.validate_by_database is true")

	// ErrEmptyNASSecret indicates a nas_settings entry has an empty secret_key.
	ErrEmptyNASSecret = errors.New("nas_settings entry has an empty secret_key")
)

// Validate checks the configuration for logical errors.
// Returns the first validation error encountered.
func Validate(cfg *Config) error {
	if cfg.Server.AuthAddr == "" {
		return ErrEmptyAuthAddr
	}

	if cfg.Server.AcctAddr == "" {
		return ErrEmptyAcctAddr
	}

	if cfg.Client.RetryCount < 1 {
		return ErrInvalidRetryCount
	}

	if cfg.Client.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if cfg.Auth.ValidateByLDAP && cfg.LDAP.Path == "" {
		return ErrLDAPPathRequired
	}

	if cfg.Auth.ValidateByDatabase && cfg.Database.Connection == "" {
		return ErrDatabaseConnectionRequired
	}

	if err := validateNASSettings(cfg.NAS); err != nil {
		return err
	}

	return nil
}

// validateNASSettings checks every nas_settings entry has a non-empty
// shared secret.
func validateNASSettings(nas map[string]NASConfig) error {
	for addr, entry := range nas {
		if entry.SecretKey == "" {
			return fmt.Errorf("nas_settings[%s]: %w", addr, ErrEmptyNASSecret)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
//
// Recognized values: "debug", "info", "warn", "error" (case-insensitive).
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
