package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	keyringadapter "github.com/ericfisherdev/statuspanel/internal/adapter/driven/keyring"
	slackadapter "github.com/ericfisherdev/statuspanel/internal/adapter/driven/slack"
	sqliteadapter "github.com/ericfisherdev/statuspanel/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/statuspanel/internal/adapter/driving/http"
	"github.com/ericfisherdev/statuspanel/internal/adapter/driving/tui"
	"github.com/ericfisherdev/statuspanel/internal/application"
	"github.com/ericfisherdev/statuspanel/internal/config"
	"github.com/ericfisherdev/statuspanel/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		fmt.Fprintln(os.Stderr, "statuspanel:", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Setup logging. The terminal menu owns stdout, so logs go to a file
	// unless running headless.
	logOut, closeLog, err := openLogOutput(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	slog.Info("config loaded",
		"db_path", cfg.DBPath,
		"credential_backend", cfg.CredentialBackend,
		"api_base_url", cfg.APIBaseURL,
		"listen_addr", cfg.ListenAddr,
		"headless", cfg.Headless,
	)

	// 3. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", db.Path())

	// 5. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 6. Wire adapters.
	client, err := slackadapter.NewClientWithHTTPClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.APIBaseURL,
		slackadapter.WithRateLimit(cfg.APIRate),
	)
	if err != nil {
		return err
	}
	presetStore := sqliteadapter.NewPresetRepo(db)

	var credentialStore driven.CredentialStore
	switch cfg.CredentialBackend {
	case config.BackendVault:
		credentialStore = sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)
	default:
		credentialStore = keyringadapter.NewStore(keyringadapter.DefaultService, keyringadapter.DefaultAccount)
	}
	slog.Info("credential store ready", "backend", cfg.CredentialBackend)

	// 7. Create services and load persisted settings.
	statusSvc := application.NewStatusService(client, cfg.ResultDisplay, logger)
	defer statusSvc.Close()

	settingsSvc := application.NewSettingsService(credentialStore, presetStore, client, statusSvc, logger)
	settingsSvc.Load(ctx)

	// 8. Start the control API when a listen address is configured.
	var srv *http.Server
	if cfg.APIEnabled() {
		apiHandler := httphandler.NewHandler(statusSvc, settingsSvc, logger)
		srv = &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           httphandler.NewServeMux(apiHandler, logger),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      cfg.HTTPTimeout + 15*time.Second,
			IdleTimeout:       120 * time.Second,
		}

		go func() {
			slog.Info("http server starting", "addr", cfg.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("http server error", "error", err)
				stop()
			}
		}()
	}

	slog.Info("statuspanel started", "headless", cfg.Headless, "api_enabled", cfg.APIEnabled())

	// 9. Run the terminal menu, or wait for a shutdown signal when headless.
	if cfg.Headless {
		statusSvc.RefreshCurrentStatus(ctx)
		<-ctx.Done()
	} else if err := tui.Run(ctx, statusSvc, settingsSvc); err != nil {
		slog.Error("terminal menu error", "error", err)
	}
	slog.Info("shutting down")

	// 10. Graceful shutdown with 10s timeout for in-flight API requests.
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http server shutdown error", "error", err)
		}
	}

	// 11. Log shutdown complete.
	slog.Info("shutdown complete")
	return nil
}

// openLogOutput returns the log destination for cfg and a function that closes it.
func openLogOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.Headless {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", cfg.LogPath, err)
	}
	return f, func() { _ = f.Close() }, nil
}
