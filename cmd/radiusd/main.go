// radiusd is a RADIUS authentication and accounting daemon (RFC 2865/2866).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dantte-lp/goradius/internal/authbackend"
	"github.com/dantte-lp/goradius/internal/config"
	"github.com/dantte-lp/goradius/internal/metrics"
	"github.com/dantte-lp/goradius/internal/radnet"
	"github.com/dantte-lp/goradius/internal/radserver"
	appversion "github.com/dantte-lp/goradius/internal/version"
)

// shutdownTimeout is the maximum time to wait for the metrics HTTP server
// to drain active connections during graceful shutdown.
const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to configuration file (YAML)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		// Logger is not set up yet; use a temporary stderr logger.
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load configuration",
			slog.String("error", err.Error()),
		)
		return 1
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(config.ParseLogLevel(cfg.Log.Level))
	logger := newLoggerWithLevel(cfg.Log, logLevel)

	logger.Info("radiusd starting",
		slog.String("version", appversion.Version),
		slog.String("auth_addr", cfg.Server.AuthAddr),
		slog.String("acct_addr", cfg.Server.AcctAddr),
		slog.String("metrics_addr", cfg.Metrics.Addr),
	)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	if err := runServers(cfg, collector, reg, logger, *configPath, logLevel); err != nil {
		logger.Error("radiusd exited with error", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("radiusd stopped")
	return 0
}

// runServers wires the authentication backends, opens the RADIUS sockets,
// and runs the server dispatch loop alongside the metrics HTTP server
// using an errgroup with signal-aware context for graceful shutdown.
func runServers(
	cfg *config.Config,
	collector *metrics.Collector,
	reg *prometheus.Registry,
	logger *slog.Logger,
	configPath string,
	logLevel *slog.LevelVar,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	authSock, err := radnet.Listen(cfg.Server.AuthAddr)
	if err != nil {
		return fmt.Errorf("listen auth addr %s: %w", cfg.Server.AuthAddr, err)
	}
	defer authSock.Close()

	acctSock, err := radnet.Listen(cfg.Server.AcctAddr)
	if err != nil {
		return fmt.Errorf("listen acct addr %s: %w", cfg.Server.AcctAddr, err)
	}
	defer acctSock.Close()

	secrets := secretResolverFromConfig(cfg)

	srvOpts := []radserver.Option{
		radserver.WithMetrics(collector),
		radserver.WithLogger(logger),
	}

	extAuth, err := externalAuthenticatorFromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("configure external authenticator: %w", err)
	}
	if extAuth != nil {
		srvOpts = append(srvOpts, radserver.WithExternalAuthenticator(extAuth))
	}

	credStore, err := credentialStoreFromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("configure credential store: %w", err)
	}
	if credStore != nil {
		srvOpts = append(srvOpts, radserver.WithCredentialStore(credStore))
	}

	srv := radserver.New(authSock, acctSock, secrets, srvOpts...)

	metricsSrv := newMetricsServer(cfg.Metrics, reg)

	g.Go(func() error {
		logger.Info("RADIUS server listening",
			slog.String("auth_addr", cfg.Server.AuthAddr),
			slog.String("acct_addr", cfg.Server.AcctAddr),
		)
		return srv.Run(gCtx)
	})

	g.Go(func() error {
		logger.Info("metrics server listening",
			slog.String("addr", cfg.Metrics.Addr),
			slog.String("path", cfg.Metrics.Path),
		)
		return listenAndServe(gCtx, metricsSrv, cfg.Metrics.Addr)
	})

	g.Go(func() error {
		return runWatchdog(gCtx, logger)
	})

	sigHUP := make(chan os.Signal, 1)
	signal.Notify(sigHUP, syscall.SIGHUP)
	g.Go(func() error {
		defer signal.Stop(sigHUP)
		handleSIGHUP(gCtx, sigHUP, configPath, logLevel, logger)
		return nil
	})

	notifyReady(logger)

	g.Go(func() error {
		<-gCtx.Done()
		return gracefulShutdown(gCtx, logger, metricsSrv)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run servers: %w", err)
	}
	return nil
}

// secretResolverFromConfig builds a SecretResolver from the nas_settings
// map.
func secretResolverFromConfig(cfg *config.Config) authbackend.SecretResolver {
	secrets := make(map[string]string, len(cfg.NAS))
	for addr, nas := range cfg.NAS {
		secrets[addr] = nas.SecretKey
	}
	return authbackend.NewStaticSecretResolver(secrets)
}

// externalAuthenticatorFromConfig constructs an LDAP-backed
// ExternalAuthenticator if auth.validate_by_ldap is enabled.
func externalAuthenticatorFromConfig(_ context.Context, cfg *config.Config) (authbackend.ExternalAuthenticator, error) {
	if !cfg.Auth.ValidateByLDAP {
		return nil, nil
	}
	return authbackend.NewLDAPAuthenticator(cfg.LDAP.Path, cfg.LDAP.DomainName, cfg.LDAP.UseTLS), nil
}

// credentialStoreFromConfig constructs a SQL-backed CredentialStore if
// auth.validate_by_database is enabled.
func credentialStoreFromConfig(ctx context.Context, cfg *config.Config) (authbackend.CredentialStore, error) {
	if !cfg.Auth.ValidateByDatabase {
		return nil, nil
	}
	store, err := authbackend.NewSQLCredentialStore(ctx, cfg.Database.Connection, cfg.Database.PasswordSQL)
	if err != nil {
		return nil, fmt.Errorf("connect credential store: %w", err)
	}
	return store, nil
}

// -------------------------------------------------------------------------
// Systemd Integration — sd_notify + watchdog
// -------------------------------------------------------------------------

// notifyReady sends READY=1 to systemd, indicating the daemon has
// completed initialization and is ready to serve.
func notifyReady(logger *slog.Logger) {
	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		logger.Warn("failed to notify systemd readiness", slog.String("error", err.Error()))
		return
	}
	if sent {
		logger.Info("notified systemd: READY")
	}
}

// notifyStopping sends STOPPING=1 to systemd, indicating the daemon is
// beginning graceful shutdown.
func notifyStopping(logger *slog.Logger) {
	sent, err := daemon.SdNotify(false, daemon.SdNotifyStopping)
	if err != nil {
		logger.Warn("failed to notify systemd stopping", slog.String("error", err.Error()))
		return
	}
	if sent {
		logger.Info("notified systemd: STOPPING")
	}
}

// runWatchdog sends periodic watchdog keepalives to systemd at half the
// configured watchdog interval. If the watchdog is not configured, the
// goroutine exits immediately.
func runWatchdog(ctx context.Context, logger *slog.Logger) error {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		logger.Warn("failed to check systemd watchdog", slog.String("error", err.Error()))
		return nil
	}
	if interval == 0 {
		logger.Debug("systemd watchdog not configured, skipping keepalive")
		return nil
	}

	tickInterval := interval / 2
	logger.Info("systemd watchdog enabled",
		slog.Duration("watchdog_sec", interval),
		slog.Duration("keepalive_interval", tickInterval),
	)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, wdErr := daemon.SdNotify(false, daemon.SdNotifyWatchdog); wdErr != nil {
				logger.Warn("failed to send watchdog keepalive", slog.String("error", wdErr.Error()))
			}
		}
	}
}

// -------------------------------------------------------------------------
// SIGHUP Reload — log level only; RADIUS has no declarative session state
// -------------------------------------------------------------------------

// handleSIGHUP listens for SIGHUP signals and reloads the dynamic log
// level from a freshly-loaded configuration file. Blocks until ctx is
// cancelled (graceful shutdown).
func handleSIGHUP(
	ctx context.Context,
	sigHUP <-chan os.Signal,
	configPath string,
	logLevel *slog.LevelVar,
	logger *slog.Logger,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sigHUP:
			logger.Info("received SIGHUP, reloading configuration")
			reloadConfig(configPath, logLevel, logger)
		}
	}
}

// reloadConfig loads a fresh configuration from path and updates the
// dynamic log level. Errors are logged but do not stop the daemon; the
// previous log level remains in effect. Shared secrets and authentication
// backends are fixed at startup and are not hot-reloaded.
func reloadConfig(configPath string, logLevel *slog.LevelVar, logger *slog.Logger) {
	newCfg, err := loadConfig(configPath)
	if err != nil {
		logger.Error("failed to reload configuration, keeping current settings",
			slog.String("error", err.Error()),
		)
		return
	}

	oldLevel := logLevel.Level()
	newLevel := config.ParseLogLevel(newCfg.Log.Level)
	logLevel.Set(newLevel)

	logger.Info("configuration reloaded",
		slog.String("old_log_level", oldLevel.String()),
		slog.String("new_log_level", newLevel.String()),
	)
}

// -------------------------------------------------------------------------
// Graceful Shutdown
// -------------------------------------------------------------------------

// gracefulShutdown performs an orderly shutdown: signals systemd, then
// shuts down the metrics HTTP server. The RADIUS sockets are closed by
// the caller's deferred Close calls once Run returns.
func gracefulShutdown(ctx context.Context, logger *slog.Logger, metricsSrv *http.Server) error {
	logger.Info("initiating graceful shutdown")
	notifyStopping(logger)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	return nil
}

// -------------------------------------------------------------------------
// Server Setup
// -------------------------------------------------------------------------

// listenAndServe creates a TCP listener and serves HTTP requests until
// the server is shut down.
func listenAndServe(ctx context.Context, srv *http.Server, addr string) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve on %s: %w", addr, err)
	}
	return nil
}

// newMetricsServer creates an HTTP server for the Prometheus metrics endpoint.
func newMetricsServer(cfg config.MetricsConfig, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// loadConfig loads configuration from a file path or returns defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

// newLoggerWithLevel creates a structured logger using a shared LevelVar
// for dynamic log level changes via SIGHUP reload.
func newLoggerWithLevel(cfg config.LogConfig, level *slog.LevelVar) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
