package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", h.ServeIndex)
	mux.HandleFunc("GET /assets/{file}", h.ServeAsset)
	return mux
}

func TestServeIndex(t *testing.T) {
	mux := newMux(NewHandler(false, zerolog.New(io.Discard)))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, rec.Body.String(), "Find the AI")
	assert.Contains(t, rec.Body.String(), "Come back tomorrow for more.")
}

func TestServeIndexUnknownPath(t *testing.T) {
	mux := newMux(NewHandler(false, zerolog.New(io.Discard)))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeAsset(t *testing.T) {
	mux := newMux(NewHandler(true, zerolog.New(io.Discard)))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/javascript; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, rec.Body.String(), "/v1/game/step")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNoticeOutsidePanels(t *testing.T) {
	mux := newMux(NewHandler(false, zerolog.New(io.Discard)))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	notice := strings.Index(body, `id="notice"`)
	intro := strings.Index(body, `id="intro"`)
	assert.Positive(t, notice)
	assert.Less(t, notice, intro, "step errors must stay visible once the intro panel is hidden")
}

func TestScriptGatesSelectionLocally(t *testing.T) {
	mux := newMux(NewHandler(false, zerolog.New(io.Discard)))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "function updateGating()")
	assert.Contains(t, body, "token !== seq")
	assert.NotContains(t, body, `step("")`, "option changes must not round-trip to the server")
	assert.NotContains(t, body, "controls.selection", "rendered views must not restore an echoed selection")
}
