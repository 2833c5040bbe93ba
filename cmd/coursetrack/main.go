package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/alexanderramin/coursetrack/internal/alert"
	"github.com/alexanderramin/coursetrack/internal/catalog"
	"github.com/alexanderramin/coursetrack/internal/cli"
	"github.com/alexanderramin/coursetrack/internal/config"
	"github.com/alexanderramin/coursetrack/internal/db"
	"github.com/alexanderramin/coursetrack/internal/logger"
	"github.com/alexanderramin/coursetrack/internal/metrics"
	"github.com/alexanderramin/coursetrack/internal/progress"
	"github.com/alexanderramin/coursetrack/internal/repository"
	"github.com/alexanderramin/coursetrack/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	kv, closeKV, err := openKV(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	m := metrics.New()
	store := progress.Open(ctx, kv,
		progress.WithKey(cfg.StorageKey),
		progress.WithLogger(log),
		progress.WithSaveFailureHook(m.SaveFailed),
	)

	tracker := service.NewTrackerService(cat, store,
		service.NewLogUseCaseObserver(log),
		service.NewMetricsUseCaseObserver(m),
	)

	checker := alert.NewChecker(cat.Courses, cat.Start, store.Snapshot, alert.NewLogNotifier(log),
		alert.WithCheckerLogger(log),
		alert.WithDispatchHook(func(a alert.Alert) { m.AlertSent(string(a.Kind)) }),
	)

	app := &cli.App{
		Tracker:        tracker,
		Scheduler:      alert.NewScheduler(checker, alert.WithSchedulerLogger(log), alert.WithSchedulerClock(store.Now)),
		MetricsHandler: m.Handler(),
		MetricsAddr:    cfg.MetricsAddr,
	}

	// Detect interactive terminal for the dashboard and prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	log.Debug("starting", zap.String("term", cat.Term), zap.Bool("redis", cfg.UsesRedis()))

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

// openKV selects Redis when a redis:// URL is configured and the local
// SQLite file otherwise.
func openKV(ctx context.Context, cfg *config.Config) (repository.KVStore, func(), error) {
	if cfg.UsesRedis() {
		r, err := repository.NewRedisKVStore(ctx, cfg.StoreURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return r, func() { r.Close() }, nil
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return repository.NewSQLiteKVStore(database), func() { database.Close() }, nil
}
