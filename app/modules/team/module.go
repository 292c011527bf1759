package team

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	teamservice "github.com/Panther-Scouting/reef-scout/app/modules/team/application"
	teamhandlers "github.com/Panther-Scouting/reef-scout/app/modules/team/infrastructure/handlers"
	teamdb "github.com/Panther-Scouting/reef-scout/app/modules/team/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/shared/eventbus"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// Module bundles the team service and its HTTP endpoints.
type Module struct {
	service  teamservice.Service
	handlers *teamhandlers.TeamHandlers
	logger   *slog.Logger
}

// NewModule creates a new team module and registers its routes.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	bus eventbus.EventBus,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing team module")

	repo := teamdb.NewRepository(db)
	service := teamservice.NewTeamService(repo, logger, obs.Metrics, obs.Tracer, db, bus)
	handlers := teamhandlers.NewTeamHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Route("/api/teams", func(r chi.Router) {
			r.Get("/", handlers.HandleListTeams)
			r.Post("/", handlers.HandleUpsertTeam)
			r.Get("/export", handlers.HandleExportTeams)
			r.Get("/{teamNumber}", handlers.HandleGetTeam)
		})
	}

	return &Module{
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Service exposes the team service to other modules.
func (m *Module) Service() teamservice.Service {
	return m.service
}
