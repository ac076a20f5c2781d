// Package main is the entry point for the quote book service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quotebook/internal/adapters/clients"
	"github.com/jsamuelsen/quotebook/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotebook/internal/adapters/flags"
	"github.com/jsamuelsen/quotebook/internal/adapters/http"
	"github.com/jsamuelsen/quotebook/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebook/internal/adapters/storage"
	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
	"github.com/jsamuelsen/quotebook/internal/platform/metrics"
	"github.com/jsamuelsen/quotebook/internal/platform/telemetry"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("storage", cfg.Storage.Driver),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		Insecure:     cfg.Telemetry.Insecure,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry()

	// 5. Open the slot store
	store, closeStore, err := openStore(ctx, &cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if checker, ok := store.(ports.HealthChecker); ok {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering storage health check: %w", err)
		}
	}

	// 6. Feature flags
	featureFlags := flags.NewStatic(cfg.Features)
	logger.Info("feature flags", slog.Any("flags", featureFlags.Snapshot()))

	// 7. Quote service; the session slot lives only as long as the process
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Store:   store,
		Session: storage.NewMemoryStore(),
		Flags:   featureFlags,
		Logger:  logger,
	})
	quoteService.Load(ctx)

	// 8. Prometheus collectors
	collectors, err := metrics.New(prometheus.DefaultRegisterer, quoteService.Count)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	// 9. Sync sources and agent
	agent, err := newSyncAgent(cfg, quoteService, featureFlags, collectors, healthRegistry, logger)
	if err != nil {
		return err
	}

	// 10. Handlers and router
	if cfg.Auth.Enabled {
		logger.Info("write routes require gateway claims",
			slog.String("issuer", cfg.Auth.Issuer),
			slog.String("audience", cfg.Auth.Audience),
			slog.String("scope", http.ScopeQuotesWrite),
		)
	}

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		ServiceName:   cfg.App.Name,
		AuthConfig:    &cfg.Auth,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, buildInfo, prometheus.DefaultGatherer),
		QuoteHandler:  handlers.NewQuoteHandler(quoteService),
		TransferHandler: handlers.NewTransferHandler(quoteService, handlers.TransferHandlerConfig{
			MaxImportBytes: cfg.Server.MaxRequestSize,
			OnImport:       collectors.ObserveImport,
		}),
		SyncHandler: handlers.NewSyncHandler(agent),
		Timeout:     http.DefaultRequestTimeout,
	})

	// 11. Run until a signal arrives or the server fails
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return <-server.Start()
	})

	if cfg.Sync.Enabled {
		agent.Start(gctx)
	}

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("initiating graceful shutdown",
			slog.Duration("timeout", cfg.Server.ShutdownTimeout),
		)

		agent.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

// openStore opens the configured slot store and returns its closer.
func openStore(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (ports.KeyValueStore, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		store, err := storage.OpenSQLite(ctx, storage.SQLiteConfig{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}

		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("closing sqlite store", slog.Any("error", err))
			}
		}, nil

	case "memory":
		return storage.NewMemoryStore(), func() {}, nil

	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, nil, fmt.Errorf("creating storage directory: %w", err)
		}

		store, err := storage.OpenFileStore(cfg.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("opening file store: %w", err)
		}

		return store, func() {}, nil
	}
}

// newSyncAgent builds one posts source per configured endpoint. The first
// source also receives the local list when publishing is on.
func newSyncAgent(
	cfg *config.Config,
	quotes *app.QuoteService,
	featureFlags ports.FeatureFlags,
	collectors *metrics.Collectors,
	healthRegistry ports.HealthRegistry,
	logger *slog.Logger,
) (*app.SyncAgent, error) {
	sources := make([]ports.QuoteSource, 0, len(cfg.Sync.Sources))

	var publisher ports.QuotePublisher

	for _, src := range cfg.Sync.Sources {
		client, err := clients.New(&clients.Config{
			BaseURL:     src.BaseURL,
			ServiceName: src.Name,
			UserAgent:   cfg.App.Name + "/" + cfg.App.Version,
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Transport:   cfg.Client.Transport,
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating client for source %q: %w", src.Name, err)
		}

		posts := acl.NewPostsSource(acl.PostsSourceConfig{
			Client:   client,
			Name:     src.Name,
			Category: cfg.Sync.Category,
			Limit:    src.Limit,
			Logger:   logger,
		})

		if err := healthRegistry.Register(posts.HealthChecker()); err != nil {
			if errors.Is(err, ports.ErrDuplicateChecker) {
				return nil, fmt.Errorf("sync source %q is configured twice: %w", src.Name, err)
			}

			return nil, fmt.Errorf("registering source health check: %w", err)
		}

		sources = append(sources, posts)

		if publisher == nil {
			publisher = posts
		}
	}

	return app.NewSyncAgent(app.SyncAgentConfig{
		Quotes:    quotes,
		Sources:   sources,
		Publisher: publisher,
		Flags:     featureFlags,
		Interval:  cfg.Sync.Interval,
		Observer: func(_ context.Context, r app.SyncResult) {
			collectors.ObserveSync(r.Merged, len(r.Failures), len(sources))
		},
		Logger: logger,
	}), nil
}
