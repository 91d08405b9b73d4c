package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Dragynn-Redeux/ACE-Dragynn-sub001/internal/config"
	"github.com/Dragynn-Redeux/ACE-Dragynn-sub001/internal/db"
	"github.com/Dragynn-Redeux/ACE-Dragynn-sub001/internal/shroud"
)

const ConfigPath = "config/shroudserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("SHROUD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadShroudServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("shroud zone server starting",
		"config", cfgPath,
		"backend", cfg.Store.Backend,
		"key", cfg.PropertyKey,
	)

	source, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics := shroud.NewMetrics(prometheus.DefaultRegisterer)
	manager := shroud.NewManager(source, shroud.ManagerConfig{
		Key:     cfg.PropertyKey,
		Metrics: metrics,
	})

	if _, err := manager.Reload(ctx); err != nil {
		return fmt.Errorf("initial shroud zone load: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Store.Backend == config.BackendFile {
		watcher := config.NewFileWatcher(cfg.Store.FilePath, cfg.WatchDebounce, nil)
		g.Go(func() error {
			slog.Info("starting property file watcher", "path", cfg.Store.FilePath)
			if err := watcher.Watch(gctx, func() { reload(gctx, manager) }); err != nil {
				return fmt.Errorf("property file watcher: %w", err)
			}
			return nil
		})
	} else {
		scheduler, err := shroud.NewScheduler(manager, cfg.RefreshSchedule)
		if err != nil {
			return err
		}
		g.Go(func() error {
			if err := scheduler.Run(gctx); err != nil {
				return fmt.Errorf("refresh scheduler: %w", err)
			}
			return nil
		})
	}

	if cfg.MetricsAddress != "" {
		g.Go(func() error {
			return serveMetrics(gctx, cfg.MetricsAddress)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// openStore открывает хранилище свойств выбранного backend'а.
func openStore(ctx context.Context, cfg config.StoreConfig) (shroud.PropertySource, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		dsn := cfg.Database.DSN()
		database, err := db.New(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, dsn); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		return database, database.Close, nil

	case config.BackendSQLite:
		store, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		slog.Info("sqlite store opened", "path", cfg.SQLitePath)
		return store, func() { _ = store.Close() }, nil

	case config.BackendFile:
		return config.NewPropertyFile(cfg.FilePath), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func reload(ctx context.Context, manager *shroud.Manager) {
	if _, err := manager.Reload(ctx); err != nil {
		slog.Error("shroud zone reload failed", "error", err)
	}
}

func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("starting metrics endpoint", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics endpoint: %w", err)
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
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
