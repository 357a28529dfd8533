package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"inventtrack/m/internal/config"
	"inventtrack/m/internal/database"
	"inventtrack/m/internal/logging"
	"inventtrack/m/internal/observability"
	"inventtrack/m/internal/repository"
	"inventtrack/m/internal/store"
	"inventtrack/m/internal/store/kv"
)

// app is the wired local backend shared by every command.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	store   store.Store
	repo    *repository.Repository
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.LogFormat)
	metrics := observability.NewMetrics()

	st, err := openStore(ctx, cfg, logger, metrics)
	if err != nil {
		return nil, err
	}
	if err := st.Init(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}
	h, err := st.Handle(ctx)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("open store handle: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		store:   st,
		repo:    repository.New(h),
	}, nil
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger, metrics *observability.Metrics) (store.Store, error) {
	opts := []store.Option{store.WithLogger(logger), store.WithObserver(metrics)}
	if !cfg.UsesDocumentStore() {
		db, err := database.Connect(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite store", slog.String("dsn", cfg.DatabaseDSN))
		return store.NewSQLite(db, opts...), nil
	}

	var backend kv.Store
	switch cfg.DocumentBackend {
	case config.BackendRedis:
		r, err := kv.DialRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		backend = r
	case config.BackendFile:
		f, err := kv.NewFile(cfg.DocumentDir)
		if err != nil {
			return nil, err
		}
		backend = f
	default:
		return nil, fmt.Errorf("unknown DOCUMENT_BACKEND %q", cfg.DocumentBackend)
	}
	logger.Info("using document store",
		slog.String("backend", cfg.DocumentBackend),
		slog.String("prefix", cfg.StoragePrefix),
	)
	return store.NewDocument(backend, cfg.StoragePrefix, opts...), nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close store", slog.Any("error", err))
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
