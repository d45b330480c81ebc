package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/linkstart-be/internal/api/respond"
	"github.com/isdelr/linkstart-be/internal/models"
	"github.com/rs/zerolog/hlog"
)

// Prober checks whether an address answers.
type Prober interface {
	Probe(ctx context.Context, address string) (models.ProbeResult, error)
}

// PingHandler exposes the reachability probe.
type PingHandler struct {
	prober Prober
}

// NewPingHandler creates a new PingHandler.
func NewPingHandler(prober Prober) *PingHandler {
	return &PingHandler{prober: prober}
}

// Ping always answers 200; failures are described in the result body.
func (h *PingHandler) Ping(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	result, err := h.prober.Probe(r.Context(), address)
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Str("address", address).Msg("Probe failed")
	}
	respond.JSON(w, http.StatusOK, result)
}
