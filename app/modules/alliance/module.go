package alliance

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	allianceservice "github.com/Panther-Scouting/reef-scout/app/modules/alliance/application"
	alliancehandlers "github.com/Panther-Scouting/reef-scout/app/modules/alliance/infrastructure/handlers"
	alliancedb "github.com/Panther-Scouting/reef-scout/app/modules/alliance/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/shared/eventbus"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// Module bundles the alliance service and its HTTP endpoints.
type Module struct {
	service  allianceservice.Service
	handlers *alliancehandlers.AllianceHandlers
	logger   *slog.Logger
}

// NewModule creates a new alliance module and registers its routes.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	bus eventbus.EventBus,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing alliance module")

	repo := alliancedb.NewRepository(db)
	service := allianceservice.NewAllianceService(repo, logger, obs.Metrics, obs.Tracer, db, bus)
	handlers := alliancehandlers.NewAllianceHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Route("/api/alliances", func(r chi.Router) {
			r.Post("/", handlers.HandleSaveSelection)
			r.Route("/{eventKey}", func(r chi.Router) {
				r.Get("/", handlers.HandleGetSelection)
				r.Get("/board", handlers.HandleGetBoard)
				r.Post("/board/assign", handlers.HandleAssign)
				r.Post("/board/unassign", handlers.HandleUnassign)
				r.Post("/board/finalize", handlers.HandleFinalize)
				r.Post("/board/unfinalize", handlers.HandleUnfinalize)
			})
		})
	}

	return &Module{
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Service exposes the alliance service to other modules.
func (m *Module) Service() allianceservice.Service {
	return m.service
}
