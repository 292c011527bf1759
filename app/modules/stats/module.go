package stats

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	statsservice "github.com/Panther-Scouting/reef-scout/app/modules/stats/application"
	statshandlers "github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/handlers"
	statsdb "github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/tba"
	"github.com/Panther-Scouting/reef-scout/app/shared/eventbus"
	"github.com/Panther-Scouting/reef-scout/config"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// Module bundles the stats service and its HTTP endpoints.
type Module struct {
	service  statsservice.Service
	repo     statsdb.Repository
	handlers *statshandlers.StatsHandlers
	logger   *slog.Logger
}

// NewModule creates a new stats module and registers its routes.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	bus eventbus.EventBus,
	selections statsservice.SelectionSource,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing stats module")

	client := tba.NewClient(cfg.TBA.BaseURL, cfg.TBA.APIKey, logger)
	repo := statsdb.NewRepository(db)
	service := statsservice.NewStatsService(repo, client, selections, logger, obs.Metrics, obs.Tracer, db, bus)
	handlers := statshandlers.NewStatsHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Route("/api/events/{eventKey}/rankings", func(r chi.Router) {
			r.Get("/", handlers.HandleGetRankings)
			r.Post("/refresh", handlers.HandleRefreshRankings)
			r.Get("/chart.png", handlers.HandleChart)
		})
	}

	return &Module{
		service:  service,
		repo:     repo,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Service exposes the stats service to background jobs.
func (m *Module) Service() statsservice.Service {
	return m.service
}

// Repository exposes the snapshot store so the job queue can sweep it.
func (m *Module) Repository() statsdb.Repository {
	return m.repo
}
