package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/find-the-ai/internal/config"
	"github.com/gokatarajesh/find-the-ai/internal/daily"
	"github.com/gokatarajesh/find-the-ai/internal/game"
	"github.com/gokatarajesh/find-the-ai/internal/web"
	httperrors "github.com/gokatarajesh/find-the-ai/pkg/http/errors"
)

// Pinger is a dependency checked by /v1/ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the feature handlers mounted on the mux. Nil entries are
// skipped.
type Handlers struct {
	Game  *game.HTTPHandlers
	Daily *daily.HTTPHandler
	Web   *web.Handler
	Deps  map[string]Pinger
}

// NewHTTPServer wires base routes (health, metrics) and the game API.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if name, err := pingDependencies(ctx, h.Deps); err != nil {
			logger.Error().Err(err).Str("dependency", name).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, name+" unavailable")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if h.Game != nil {
		mux.HandleFunc("POST /v1/game/start", h.Game.Start)
		mux.HandleFunc("POST /v1/game/step", h.Game.Step)
	}

	if h.Daily != nil {
		mux.HandleFunc("GET /v1/daily/status", h.Daily.HandleStatus)
	}

	if h.Web != nil {
		mux.HandleFunc("GET /{$}", h.Web.ServeIndex)
		mux.HandleFunc("GET /assets/{file}", h.Web.ServeAsset)
	}

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           withRequestContext(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func pingDependencies(ctx context.Context, deps map[string]Pinger) (string, error) {
	for name, dep := range deps {
		if dep == nil {
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			return name, err
		}
	}
	return "", nil
}
