package statshandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	statsservice "github.com/Panther-Scouting/reef-scout/app/modules/stats/application"
	"github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/tba"
	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
)

// StatsHandlers exposes the event stats endpoints.
type StatsHandlers struct {
	service statsservice.Service
	logger  *slog.Logger
}

// NewStatsHandlers creates a new StatsHandlers instance.
func NewStatsHandlers(service statsservice.Service, logger *slog.Logger) *StatsHandlers {
	return &StatsHandlers{
		service: service,
		logger:  logger,
	}
}

func (h *StatsHandlers) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	view, err := h.service.GetRankings(ctx, eventKey)
	if err != nil {
		h.writeError(w, r, eventKey, "get rankings", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *StatsHandlers) HandleRefreshRankings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	view, err := h.service.RefreshRankings(ctx, eventKey)
	if err != nil {
		h.writeError(w, r, eventKey, "refresh rankings", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *StatsHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	png, err := h.service.RenderChart(ctx, eventKey)
	if err != nil {
		h.writeError(w, r, eventKey, "render chart", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *StatsHandlers) writeError(w http.ResponseWriter, r *http.Request, eventKey, action string, err error) {
	switch {
	case errors.Is(err, statsservice.ErrMissingEventKey):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, tba.ErrNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	case errors.Is(err, tba.ErrUnauthorized):
		http.Error(w, "ranking source rejected the configured key", http.StatusBadGateway)
	default:
		h.logger.ErrorContext(r.Context(), "Stats operation failed",
			attr.String("action", action),
			attr.String("event_key", eventKey),
			attr.Error(err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
