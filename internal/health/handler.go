// Package health exposes the unauthenticated liveness endpoint.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"attrisk/internal/model"
	"attrisk/pkg/platform/httputil"
)

// Pinger reports whether a backing store answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler answers liveness probes. The endpoint reports degraded states
// (model missing, storage down) without failing the probe: the process is
// alive either way.
type Handler struct {
	adapter *model.Adapter
	storage Pinger
}

func New(adapter *model.Adapter, storage Pinger) *Handler {
	return &Handler{adapter: adapter, storage: storage}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealthz)
}

type healthResponse struct {
	Status  string `json:"status"`
	Model   string `json:"model"`
	Storage string `json:"storage"`
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Model: "loaded", Storage: "ok"}

	if h.adapter == nil || !h.adapter.Loaded() {
		resp.Status = "degraded"
		resp.Model = "not_loaded"
	}

	if h.storage == nil {
		resp.Storage = "memory"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.PingContext(ctx); err != nil {
			resp.Status = "degraded"
			resp.Storage = "unreachable"
		}
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
