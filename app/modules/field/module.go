package field

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	fieldservice "github.com/Panther-Scouting/reef-scout/app/modules/field/application"
	fieldhandlers "github.com/Panther-Scouting/reef-scout/app/modules/field/infrastructure/handlers"
	fielddb "github.com/Panther-Scouting/reef-scout/app/modules/field/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// Module bundles the field planner service and its HTTP endpoints.
type Module struct {
	service  fieldservice.Service
	handlers *fieldhandlers.FieldHandlers
	logger   *slog.Logger
}

// NewModule creates a new field module and registers its routes.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing field module")

	repo := fielddb.NewRepository(db)
	service := fieldservice.NewFieldService(repo, logger, obs.Metrics, obs.Tracer, db)
	handlers := fieldhandlers.NewFieldHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Route("/api/events/{eventKey}/field", func(r chi.Router) {
			r.Get("/", handlers.HandleGetLayout)
			r.Post("/teams", handlers.HandleAddTeam)
			r.Post("/teams/remove", handlers.HandleRemoveTeam)
			r.Post("/position", handlers.HandleSetPosition)
			r.Post("/custom-position", handlers.HandleSetCustomPosition)
		})
	}

	return &Module{
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Service exposes the field service.
func (m *Module) Service() fieldservice.Service {
	return m.service
}
