package daily

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/find-the-ai/internal/game"
	httperrors "github.com/gokatarajesh/find-the-ai/pkg/http/errors"
)

// HTTPHandler reports whether today's set is ready.
type HTTPHandler struct {
	svc    *Service
	now    func() time.Time
	logger zerolog.Logger
}

func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		now:    time.Now,
		logger: logger.With().Str("component", "daily_http").Logger(),
	}
}

// HandleStatus responds to GET /v1/daily/status.
func (h *HTTPHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	day := game.DayKey(h.now())
	pairs, err := h.svc.QuestionPairs(r.Context(), day)
	if err != nil {
		h.logger.Warn().Err(err).Str("day", day).Msg("daily status lookup failed")
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeUpstreamError, "Daily set store unavailable")
		return
	}

	httperrors.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"day":         day,
		"ready":       len(pairs) > 0,
		"pairs":       len(pairs),
		"retrievedAt": h.now().UTC().Format(time.RFC3339),
	})
}
