package game

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/find-the-ai/internal/logging"
	"github.com/gokatarajesh/find-the-ai/internal/metrics"
	httperrors "github.com/gokatarajesh/find-the-ai/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandlers exposes the round engine over JSON. The server keeps no
// session state; the browser sends its blob with every request.
type HTTPHandlers struct {
	engine *Engine
	source PairSource
	now    func() time.Time
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for game endpoints.
func NewHTTPHandlers(engine *Engine, source PairSource, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		engine: engine,
		source: source,
		now:    time.Now,
		logger: logger.With().Str("component", "game_http").Logger(),
	}
}

type startRequest struct {
	State json.RawMessage `json:"state"`
}

type stepRequest struct {
	State     json.RawMessage `json:"state"`
	Event     Event           `json:"event"`
	Selection Selection       `json:"selection"`
}

type stateResponse struct {
	State json.RawMessage `json:"state"`
	View  View            `json:"view"`
}

// Start handles POST /v1/game/start. It runs the daily reset check on the
// stored blob; a missing or unreadable blob starts a fresh session.
func (h *HTTPHandlers) Start(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	var req startRequest
	if err := decodeBody(r, &req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	var prev *State
	if !IsAbsent(req.State) {
		decoded, err := DecodeState(req.State, h.engine.Config().QuotesPerDay)
		if err != nil {
			logger.Debug().Err(err).Msg("discarding unreadable game state")
		} else {
			prev = decoded
		}
	}

	state, err := h.engine.Begin(r.Context(), prev, h.now(), h.source)
	if err != nil {
		h.observe("start", err)
		h.respondEngineError(w, err)
		return
	}
	if state != prev {
		logger.Info().Str("day", DayKey(state.CreatedAt)).Msg("fresh game session")
	}

	view, err := h.engine.Project(state, Selection{})
	h.observe("start", err)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respondState(w, state, view)
}

// Step handles POST /v1/game/step.
func (h *HTTPHandlers) Step(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if err := decodeBody(r, &req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if IsAbsent(req.State) {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidState, "Game state required")
		return
	}

	prev, err := DecodeState(req.State, h.engine.Config().QuotesPerDay)
	if err != nil {
		h.observe(eventLabel(req.Event), err)
		h.respondEngineError(w, err)
		return
	}

	next, view, err := h.engine.Step(prev, req.Event, req.Selection)
	h.observe(eventLabel(req.Event), err)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	h.respondState(w, next, view)
}

func (h *HTTPHandlers) respondState(w http.ResponseWriter, s *State, view View) {
	blob, err := EncodeState(s)
	if err != nil {
		h.logger.Error().Err(err).Msg("encode game state")
		httperrors.RespondInternalError(w, "Failed to encode game state")
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, stateResponse{State: blob, View: view})
}

func (h *HTTPHandlers) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrContentNotReady):
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeContentNotReady, "Today's quotes are not ready yet")
	case errors.Is(err, ErrNoSelection):
		httperrors.RespondUnprocessable(w, httperrors.ErrCodeSelectionRequired, "Pick one of the two quotes first")
	case errors.Is(err, ErrAmbiguousSelection):
		httperrors.RespondUnprocessable(w, httperrors.ErrCodeAmbiguousSelection, "Pick only one of the two quotes")
	case errors.Is(err, ErrInvalidTransition):
		httperrors.RespondConflict(w, httperrors.ErrCodeInvalidTransition, err.Error())
	case errors.Is(err, ErrUnknownEvent):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, ErrMalformedState), errors.Is(err, ErrIncompleteResults):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidState, err.Error())
	default:
		h.logger.Error().Err(err).Msg("game request failed")
		httperrors.RespondInternalError(w, "Failed to load game")
	}
}

func (h *HTTPHandlers) observe(event string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrContentNotReady):
		outcome = "content_not_ready"
	case errors.Is(err, ErrMalformedState), errors.Is(err, ErrIncompleteResults):
		outcome = "invalid_state"
	default:
		outcome = "rejected"
	}
	metrics.GameTransitions.WithLabelValues(event, outcome).Inc()
}

func eventLabel(ev Event) string {
	switch ev {
	case EventNone:
		return "render"
	case EventAdvance, EventRetry:
		return string(ev)
	default:
		return "unknown"
	}
}

func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
