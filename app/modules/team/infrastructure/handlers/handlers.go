package teamhandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	teamservice "github.com/Panther-Scouting/reef-scout/app/modules/team/application"
	teamdb "github.com/Panther-Scouting/reef-scout/app/modules/team/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
)

// TeamHandlers exposes the team endpoints.
type TeamHandlers struct {
	service teamservice.Service
	logger  *slog.Logger
}

// NewTeamHandlers creates a new TeamHandlers instance.
func NewTeamHandlers(service teamservice.Service, logger *slog.Logger) *TeamHandlers {
	return &TeamHandlers{
		service: service,
		logger:  logger,
	}
}

func (h *TeamHandlers) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	teams, err := h.service.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list teams", attr.Error(err))
		http.Error(w, "failed to list teams", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(teams)
}

func (h *TeamHandlers) HandleUpsertTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input teamservice.TeamInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.service.UpsertTeam(ctx, input)
	if err != nil {
		if errors.Is(err, teamservice.ErrMissingTeamNumber) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to upsert team",
			attr.String("team_number", input.TeamNumber),
			attr.Error(err),
		)
		http.Error(w, "failed to save team", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(team)
}

func (h *TeamHandlers) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamNumber := chi.URLParam(r, "teamNumber")

	team, err := h.service.GetTeam(ctx, teamNumber)
	if err != nil {
		if errors.Is(err, teamdb.ErrNotFound) {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get team",
			attr.String("team_number", teamNumber),
			attr.Error(err),
		)
		http.Error(w, "failed to get team", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(team)
}

func (h *TeamHandlers) HandleExportTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.service.ExportTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to export teams", attr.Error(err))
		http.Error(w, "failed to export teams", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("scouting-data-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}
