package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/find-the-ai/internal/config"
	"github.com/gokatarajesh/find-the-ai/internal/game"
	"github.com/gokatarajesh/find-the-ai/internal/web"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type staticSource []game.Pair

func (s staticSource) QuestionPairs(context.Context, string) ([]game.Pair, error) {
	return s, nil
}

func testServer(t *testing.T, h Handlers) *httptest.Server {
	t.Helper()
	srv := NewHTTPServer(&config.App{HTTPAddr: ":0"}, zerolog.New(io.Discard), h)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthzAndRequestID(t *testing.T) {
	ts := testServer(t, Handlers{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, err = uuid.Parse(resp.Header.Get(requestIDHeader))
	assert.NoError(t, err)
}

func TestRequestIDIsPropagated(t *testing.T) {
	ts := testServer(t, Handlers{})
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, id, resp.Header.Get(requestIDHeader))
}

func TestPingReportsFailingDependency(t *testing.T) {
	ts := testServer(t, Handlers{Deps: map[string]Pinger{
		"store": pingerFunc(func(context.Context) error { return errors.New("closed") }),
	}})

	resp, err := http.Get(ts.URL + "/v1/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, string(body), "store unavailable")
}

func TestGameRoutesMounted(t *testing.T) {
	engine, err := game.NewEngine(game.Config{QuotesPerDay: 1})
	require.NoError(t, err)
	src := staticSource{{
		{Content: "Be yourself.", Author: "Oscar Wilde", Type: game.QuoteHuman},
		{Content: "Authenticity is trending.", Type: game.QuoteAI},
	}}
	ts := testServer(t, Handlers{
		Game: game.NewHTTPHandlers(engine, src, zerolog.New(io.Discard)),
		Web:  web.NewHandler(false, zerolog.New(io.Discard)),
	})

	resp, err := http.Post(ts.URL+"/v1/game/start", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(ts.URL + "/v1/game/start")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp2.StatusCode)

	resp3, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusOK, resp3.StatusCode)
}
