package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/find-the-ai/internal/config"
	"github.com/gokatarajesh/find-the-ai/internal/daily"
	"github.com/gokatarajesh/find-the-ai/internal/db/store"
	"github.com/gokatarajesh/find-the-ai/internal/game"
	"github.com/gokatarajesh/find-the-ai/internal/logging"
	"github.com/gokatarajesh/find-the-ai/internal/server"
	"github.com/gokatarajesh/find-the-ai/internal/web"
)

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store store.Querier
	redis *redis.Client
	http  *http.Server

	warmer    *daily.Warmer
	bgCancels []context.CancelFunc
}

// New bootstraps logger, store, optional Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting application bootstrap")

	q, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	redisClient, err := OpenRedis(ctx, cfg)
	if err != nil {
		_ = q.Close()
		return nil, err
	}
	if redisClient == nil {
		logger.Warn().Msg("REDIS_ADDR not set; daily sets are read from the store on every request")
	}

	engine, err := game.NewEngine(game.Config{
		QuotesPerDay:  cfg.Game.QuotesPerDay,
		AIAttribution: cfg.Game.AIAttribution,
	})
	if err != nil {
		_ = q.Close()
		return nil, fmt.Errorf("build engine: %w", err)
	}

	dailySvc := NewDailyService(q, redisClient, cfg, logger)

	var warmer *daily.Warmer
	if cfg.Game.WarmInterval > 0 {
		warmer = daily.NewWarmer(dailySvc, cfg.Game.WarmInterval, logger)
	}

	deps := map[string]server.Pinger{"store": q}
	if redisClient != nil {
		deps["redis"] = daily.NewRedisCache(redisClient, cfg.Redis.PairsTTL)
	}

	apiServer := server.NewHTTPServer(cfg, logger, server.Handlers{
		Game:  game.NewHTTPHandlers(engine, dailySvc, logger),
		Daily: daily.NewHTTPHandler(dailySvc, logger),
		Web:   web.NewHandler(cfg.Env == "production", logger),
		Deps:  deps,
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		store:  q,
		redis:  redisClient,
		http:   apiServer,
		warmer: warmer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error().Err(err).Msg("store shutdown error")
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.warmer != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.warmer.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("daily warmer stopped")
			}
		}()
	}
}
