// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/themesmith/internal/config"
	"github.com/codr1/themesmith/internal/db"
	"github.com/codr1/themesmith/internal/library"
	"github.com/codr1/themesmith/internal/logging"
	"github.com/codr1/themesmith/internal/metrics"
	"github.com/codr1/themesmith/internal/ratelimit"
	"github.com/codr1/themesmith/internal/scheduler"
	"github.com/codr1/themesmith/internal/storage"
	"github.com/codr1/themesmith/internal/storage/redisstore"
	"github.com/codr1/themesmith/internal/validation"
)

const jobTimeout = 2 * time.Minute

// loadConfig reads CONFIG_PATH when set. Without it the server runs on the
// in-memory defaults with PORT and ENVIRONMENT overrides.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return config.Load(path)
	}
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg := config.Default()
	cfg.App.Environment = getEnv("ENVIRONMENT", cfg.App.Environment)
	cfg.App.Port = getEnvAsInt("PORT", cfg.App.Port)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

// openStore returns the configured backend and a closer for its connection.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		database, err := db.NewFromConfig(cfg)
		if err != nil {
			return nil, nil, err
		}
		return database, database, nil
	case config.StorageRedis:
		store, err := redisstore.New(ctx, redisstore.Config{
			URL:      cfg.Storage.URL,
			Password: cfg.Storage.Password,
			Prefix:   cfg.Storage.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return storage.NewMemory(), nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logFile := logging.Setup(logging.Config{
		Environment: cfg.App.Environment,
		Level:       cfg.Logging.Level,
		FilePath:    cfg.Logging.File,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
	})
	defer logFile.Close()

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to open storage")
	}
	defer closer.Close()

	var m *metrics.Metrics
	if cfg.Features.EnableMetrics {
		m = metrics.New()
	}
	engine := validation.NewEngine(validation.Options{})
	lib := library.New(store, library.Options{
		Engine:       engine,
		Metrics:      m,
		BackupPrefix: cfg.Backup.Prefix,
	})

	presets, defaultID, err := db.ParseThemePresets()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse preset themes")
	}
	if _, err := lib.SeedPresets(ctx, presets); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed preset themes")
	}

	jobs, err := scheduler.New(jobTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if cfg.Backup.Schedule != "" {
		if err := jobs.RegisterBackupJob(lib, cfg.Backup.Schedule, cfg.Backup.Retention, m.ObserveBackup); err != nil {
			log.Fatal().Err(err).Msg("Failed to register backup job")
		}
	}
	jobs.Start()

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.WritesPerMinute > 0 {
		limiter = ratelimit.New(ratelimit.Config{
			WritesPerMinute: cfg.RateLimit.WritesPerMinute,
			Burst:           cfg.RateLimit.Burst,
			TrustProxy:      cfg.RateLimit.TrustProxy,
		})
		defer limiter.Close()
	}

	server := newServer(cfg, serverDeps{
		library:   lib,
		engine:    engine,
		metrics:   m,
		limiter:   limiter,
		defaultID: defaultID,
	})

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("storage", cfg.Storage.Driver).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout())
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := jobs.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func shutdownTimeout() time.Duration {
	return time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second
}
