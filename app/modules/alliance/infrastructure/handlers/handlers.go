package alliancehandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	allianceservice "github.com/Panther-Scouting/reef-scout/app/modules/alliance/application"
	alliancedomain "github.com/Panther-Scouting/reef-scout/app/modules/alliance/domain"
	alliancedb "github.com/Panther-Scouting/reef-scout/app/modules/alliance/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
)

// AllianceHandlers exposes the alliance selection endpoints.
type AllianceHandlers struct {
	service allianceservice.Service
	logger  *slog.Logger
}

// NewAllianceHandlers creates a new AllianceHandlers instance.
func NewAllianceHandlers(service allianceservice.Service, logger *slog.Logger) *AllianceHandlers {
	return &AllianceHandlers{
		service: service,
		logger:  logger,
	}
}

// saveRequest is the body of POST /api/alliances.
type saveRequest struct {
	EventKey  string                   `json:"eventKey"`
	Alliances []alliancedomain.Alliance `json:"alliances"`
	Finalized bool                     `json:"finalized"`
}

// slotRequest is the body of the assign and unassign endpoints.
type slotRequest struct {
	AllianceNumber int    `json:"allianceNumber"`
	Role           string `json:"role"`
	TeamNumber     string `json:"teamNumber"`
}

func (h *AllianceHandlers) HandleGetSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	view, err := h.service.GetSelection(ctx, eventKey)
	if err != nil {
		h.writeError(w, r, eventKey, "get selection", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *AllianceHandlers) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	view, err := h.service.GetBoard(ctx, eventKey)
	if err != nil {
		h.writeError(w, r, eventKey, "get board", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *AllianceHandlers) HandleSaveSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	board := alliancedomain.Board{Alliances: req.Alliances, Finalized: req.Finalized}
	view, err := h.service.SaveSelection(ctx, req.EventKey, board)
	if err != nil {
		h.writeError(w, r, req.EventKey, "save selection", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(view)
}

func (h *AllianceHandlers) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.Assign(ctx, eventKey, req.AllianceNumber, alliancedomain.Role(req.Role), req.TeamNumber)
	if err != nil {
		h.writeError(w, r, eventKey, "assign", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *AllianceHandlers) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.service.Unassign(ctx, eventKey, req.AllianceNumber, alliancedomain.Role(req.Role))
	if err != nil {
		h.writeError(w, r, eventKey, "unassign", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *AllianceHandlers) HandleFinalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	view, err := h.service.Finalize(ctx, eventKey)
	if err != nil {
		h.writeError(w, r, eventKey, "finalize", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (h *AllianceHandlers) HandleUnfinalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventKey := chi.URLParam(r, "eventKey")

	view, err := h.service.Unfinalize(ctx, eventKey)
	if err != nil {
		h.writeError(w, r, eventKey, "unfinalize", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// writeError maps domain errors to client statuses and everything else to a
// 500 with a log line.
func (h *AllianceHandlers) writeError(w http.ResponseWriter, r *http.Request, eventKey, action string, err error) {
	switch {
	case errors.Is(err, allianceservice.ErrMissingEventKey),
		errors.Is(err, alliancedomain.ErrInvalidAlliance),
		errors.Is(err, alliancedomain.ErrInvalidRole),
		errors.Is(err, alliancedomain.ErrEmptyTeam):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, alliancedb.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, alliancedomain.ErrFinalized):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.ErrorContext(r.Context(), "Alliance operation failed",
			attr.String("action", action),
			attr.String("event_key", eventKey),
			attr.Error(err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
