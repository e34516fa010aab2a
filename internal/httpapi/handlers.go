package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/faq"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/knowledge"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/metrics"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/policy"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 64 << 10

// Engine is the FAQ engine surface the handlers need.
type Engine interface {
	Answer(ctx context.Context, query string, threshold float64, topK int) (*types.AnswerResult, error)
	Status() (*faq.Status, error)
	Reload(ctx context.Context) error
	Ready() bool
}

type handler struct {
	logger zerolog.Logger
	engine Engine
	cfg    Config
}

// AnswerRequest is the body of POST /v1/answer.
type AnswerRequest struct {
	Query     *string  `json:"query"`
	Threshold *float64 `json:"threshold,omitempty"`
	TopK      *int     `json:"top_k,omitempty"`
}

// FeedbackRequest is the body of POST /v1/feedback.
type FeedbackRequest struct {
	Label      json.RawMessage `json:"label"`
	Confidence *float64        `json:"confidence"`
	Amount     float64         `json:"amount,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if !h.engine.Ready() {
		status = "starting"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  status,
		"service": "faqbot",
		"ready":   h.engine.Ready(),
	})
}

func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	st, err := h.engine.Status()
	if errors.Is(err, types.ErrIndexNotBuilt) {
		writeError(w, http.StatusServiceUnavailable, "not_indexed", "knowledge base not indexed")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("status failed")
		writeError(w, http.StatusInternalServerError, "internal", "status failed")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *handler) answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Query == nil {
		writeError(w, http.StatusBadRequest, "missing_query", "query is required")
		return
	}

	threshold := h.cfg.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	topK := h.cfg.TopK
	if req.TopK != nil {
		topK = *req.TopK
	}

	res, err := h.engine.Answer(r.Context(), *req.Query, threshold, topK)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, types.ErrInvalidThreshold):
		writeError(w, http.StatusBadRequest, "invalid_threshold", "threshold must be between 0 and 1")
	case errors.Is(err, types.ErrInvalidTopK):
		writeError(w, http.StatusBadRequest, "invalid_top_k", "top_k must not be negative")
	case errors.Is(err, types.ErrIndexNotBuilt):
		writeError(w, http.StatusServiceUnavailable, "not_indexed", "knowledge base not indexed")
	default:
		h.logger.Error().Err(err).Msg("answer failed")
		writeError(w, http.StatusInternalServerError, "internal", "answer failed")
	}
}

func (h *handler) feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}

	label := parseLabel(req.Label)
	if label == "" {
		writeError(w, http.StatusBadRequest, "missing_label", "label is required")
		return
	}
	if req.Confidence == nil {
		writeError(w, http.StatusBadRequest, "missing_confidence", "confidence is required")
		return
	}

	outcome, err := policy.Resolve(label, *req.Confidence, req.Amount, h.cfg.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_feedback", err.Error())
		return
	}
	metrics.ActionsTotal.WithLabelValues(string(outcome.Action)).Inc()

	writeJSON(w, http.StatusOK, outcome)
}

func (h *handler) reload(w http.ResponseWriter, r *http.Request) {
	var loadErr *knowledge.LoadError

	err := h.engine.Reload(r.Context())
	switch {
	case err == nil:
	case errors.Is(err, faq.ErrReloadInProgress):
		writeError(w, http.StatusConflict, "reload_in_progress", "a reload is already running")
		return
	case errors.Is(err, faq.ErrNoSource):
		writeError(w, http.StatusNotFound, "no_source", "no knowledge document configured")
		return
	case errors.As(err, &loadErr):
		writeError(w, http.StatusUnprocessableEntity, "invalid_knowledge", loadErr.Error())
		return
	default:
		h.logger.Error().Err(err).Msg("reload failed")
		writeError(w, http.StatusInternalServerError, "internal", "reload failed")
		return
	}

	st, err := h.engine.Status()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "status failed")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// parseLabel accepts a JSON string or an integral class index
func parseLabel(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && f == math.Trunc(f) {
		return strconv.Itoa(int(f))
	}
	return ""
}
