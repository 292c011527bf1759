package fieldhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	fieldservice "github.com/Panther-Scouting/reef-scout/app/modules/field/application"
	fielddomain "github.com/Panther-Scouting/reef-scout/app/modules/field/domain"
	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
)

// FieldHandlers exposes the field position planner endpoints.
type FieldHandlers struct {
	service fieldservice.Service
	logger  *slog.Logger
}

// NewFieldHandlers creates a new FieldHandlers instance.
func NewFieldHandlers(service fieldservice.Service, logger *slog.Logger) *FieldHandlers {
	return &FieldHandlers{
		service: service,
		logger:  logger,
	}
}

// teamRequest is the body of the add and remove endpoints.
type teamRequest struct {
	TeamNumber string `json:"teamNumber"`
	Alliance   string `json:"alliance"`
}

// positionRequest is the body of the position endpoint.
type positionRequest struct {
	TeamNumber string `json:"teamNumber"`
	Position   string `json:"position"`
}

// customPositionRequest is the body of the custom position endpoint.
type customPositionRequest struct {
	TeamNumber string  `json:"teamNumber"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

func (h *FieldHandlers) HandleGetLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	view, err := h.service.GetLayout(ctx, eventKey)
	if err != nil {
		h.writeError(w, r, eventKey, "get layout", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *FieldHandlers) HandleAddTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.AddTeam(ctx, eventKey, req.TeamNumber, fielddomain.Alliance(req.Alliance))
	if err != nil {
		h.writeError(w, r, eventKey, "add team", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *FieldHandlers) HandleRemoveTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.RemoveTeam(ctx, eventKey, req.TeamNumber)
	if err != nil {
		h.writeError(w, r, eventKey, "remove team", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *FieldHandlers) HandleSetPosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.SetPosition(ctx, eventKey, req.TeamNumber, req.Position)
	if err != nil {
		h.writeError(w, r, eventKey, "set position", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *FieldHandlers) HandleSetCustomPosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	var req customPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.SetCustomPosition(ctx, eventKey, req.TeamNumber, req.X, req.Y)
	if err != nil {
		h.writeError(w, r, eventKey, "set custom position", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// writeError maps domain errors to client statuses and everything else to a
// 500 with a log line.
func (h *FieldHandlers) writeError(w http.ResponseWriter, r *http.Request, eventKey, action string, err error) {
	switch {
	case errors.Is(err, fieldservice.ErrMissingEventKey),
		errors.Is(err, fielddomain.ErrEmptyTeam),
		errors.Is(err, fielddomain.ErrInvalidAlliance):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, fielddomain.ErrTeamNotOnField):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.ErrorContext(r.Context(), "Field operation failed",
			attr.String("action", action),
			attr.String("event_key", eventKey),
			attr.Error(err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
