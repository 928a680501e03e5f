// Package handler exposes the scoring pipeline over HTTP. It stays thin:
// decode, delegate to the service, encode.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"attrisk/internal/history"
	"attrisk/internal/scoring"
	dErrors "attrisk/pkg/domain-errors"
	"attrisk/pkg/platform/httputil"
	"attrisk/pkg/requestcontext"
)

// Service is the scoring pipeline the handler delegates to.
type Service interface {
	Score(ctx context.Context, rec scoring.EmployeeRecord) (scoring.ScoreResult, error)
	History(ctx context.Context, limit int) ([]*history.Record, error)
}

// Handler serves the prediction endpoints.
type Handler struct {
	service  Service
	logger   *slog.Logger
	authGate func(http.Handler) http.Handler
}

// New creates a scoring Handler. authGate is applied to every route the
// handler registers.
func New(service Service, logger *slog.Logger, authGate func(http.Handler) http.Handler) *Handler {
	return &Handler{
		service:  service,
		logger:   logger,
		authGate: authGate,
	}
}

// Register mounts the prediction routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(g chi.Router) {
		if h.authGate != nil {
			g.Use(h.authGate)
		}
		g.Post("/predict", h.handlePredict)
		g.Get("/history", h.handleHistory)
	})
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[scoring.EmployeeRecord](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Score(ctx, *req)
	if err != nil {
		h.logger.ErrorContext(ctx, "scoring request failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newPredictResponse(result))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		h.logger.WarnContext(ctx, "invalid history limit",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	records, err := h.service.History(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "history query failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newHistoryResponse(records))
}

// parseLimit reads the optional limit query parameter. Zero means "use the
// service default".
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer")
	}
	return limit, nil
}
