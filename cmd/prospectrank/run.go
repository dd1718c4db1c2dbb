package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hooplens/prospectrank/internal/adapters/http/api"
	"github.com/hooplens/prospectrank/internal/adapters/repository"
	service "github.com/hooplens/prospectrank/internal/app"
	"github.com/hooplens/prospectrank/internal/config"
	"github.com/hooplens/prospectrank/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// bootstrap loads configuration and builds a started service over the
// SQLite store. The caller owns both returned closers.
func bootstrap(ctx context.Context) (*config.Config, *service.Service, *repository.SQLiteStore, error) {
	if err := logger.Init(); err != nil {
		return nil, nil, nil, fmt.Errorf("init logging: %w", err)
	}

	cfg, err := config.Load(ctx, cfgFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := repository.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}

	svc := service.New(
		service.WithSource(store),
		service.WithSnapshotStore(store),
		service.WithScoringWeights(cfg.Scoring),
		service.WithBatchSize(cfg.BatchSize),
		service.WithCacheTTL(cfg.CacheTTL()),
		service.WithCacheMaxEntries(cfg.CacheMaxEntries),
		service.WithCacheSweepInterval(cfg.CacheSweepInterval()),
		service.WithDraftClass(cfg.DraftClass),
		service.WithTrendEpsilon(cfg.TrendEpsilon),
		service.WithTrendThresholds(cfg.TrendThresholds),
		service.WithTrendTopK(cfg.TrendTopK),
		service.WithLogger(logger.Get()),
	)
	if err := svc.Start(ctx); err != nil {
		_ = store.Close()
		return nil, nil, nil, fmt.Errorf("start service: %w", err)
	}
	return cfg, svc, store, nil
}

func runServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, svc, store, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer svc.Stop()

	log := logger.Get()

	if err := svc.Refresh(ctx); err != nil {
		log.Warn(ctx, "initial board refresh failed", logger.Error(err))
	}

	go refreshLoop(ctx, svc, cfg.RefreshInterval())
	go snapshotLoop(ctx, svc, cfg.SnapshotInterval())

	// Hot reload applies the scoring table and log level without a
	// restart; everything else needs one.
	if cfgFile != "" {
		go func() {
			err := config.Watch(ctx, cfgFile, func(next *config.Config) {
				svc.ApplyScoringConfig(ctx, next.Scoring)
				_ = logger.SetLevelString(next.LogLevel)
			})
			if err != nil {
				log.Warn(ctx, "config watch stopped", logger.Error(err))
			}
		}()
	}

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, cfg.MaxBoardLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

func refreshLoop(ctx context.Context, svc *service.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.Refresh(ctx); err != nil {
				logger.Get().Warn(ctx, "board refresh failed", logger.Error(err))
			}
		}
	}
}

func snapshotLoop(ctx context.Context, svc *service.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.CaptureSnapshots(ctx); err != nil {
				logger.Get().Warn(ctx, "snapshot capture failed", logger.Error(err))
			}
		}
	}
}

func runBoard(limit int, jsonOutput bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, svc, store, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer svc.Stop()

	if err := svc.Refresh(ctx); err != nil {
		return err
	}
	entries, err := svc.TopN(ctx, limit)
	if err != nil {
		return err
	}

	w := os.Stdout
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	fmt.Fprintf(w, "%-5s %-24s %-14s %s\n", "RANK", "NAME", "TIER", "SCORE")
	for _, e := range entries {
		fmt.Fprintf(w, "%-5d %-24s %-14s %.4f\n", e.Rank, e.Name, e.Tier, e.TotalScore)
	}
	return nil
}

func runTrending(window string, limit int) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, svc, store, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer svc.Stop()

	rising, falling, err := svc.Trending(ctx, window, limit)
	if err != nil {
		return err
	}

	w := os.Stdout
	fmt.Fprintf(w, "Rising (%s):\n", window)
	for _, r := range rising {
		fmt.Fprintf(w, "  %-24s %+.2f\n", r.ProspectID, r.ScoreDelta)
	}
	fmt.Fprintf(w, "Falling (%s):\n", window)
	for _, r := range falling {
		fmt.Fprintf(w, "  %-24s %+.2f\n", r.ProspectID, r.ScoreDelta)
	}
	return nil
}
