// Package app assembles the scouting service: database, event bus, modules,
// HTTP router, and the background job queue.
package app

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	appmiddleware "github.com/Panther-Scouting/reef-scout/app/middleware"
	"github.com/Panther-Scouting/reef-scout/app/modules/alliance"
	"github.com/Panther-Scouting/reef-scout/app/modules/field"
	"github.com/Panther-Scouting/reef-scout/app/modules/stats"
	"github.com/Panther-Scouting/reef-scout/app/modules/team"
	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
	"github.com/Panther-Scouting/reef-scout/app/shared/eventbus"
	"github.com/Panther-Scouting/reef-scout/config"
	"github.com/Panther-Scouting/reef-scout/db/bundb"
	"github.com/Panther-Scouting/reef-scout/internal/jobs"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// App holds every long-lived component of the service.
type App struct {
	cfg    *config.Config
	obs    *observability.Observability
	db     *bun.DB
	bus    eventbus.EventBus
	router chi.Router
	jobs   *jobs.Service

	teamModule     *team.Module
	allianceModule *alliance.Module
	statsModule    *stats.Module
	fieldModule    *field.Module
}

// NewApp wires the application together. The alliance module is built before
// stats so the stats service can overlay selection state onto standings.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Observability) (*App, error) {
	logger := obs.Logger

	db, err := bundb.Connect(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	bus := eventbus.NewNoop()
	if cfg.NATS.URL != "" {
		bus, err = eventbus.NewNATSBus(cfg.NATS.URL, logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create event bus: %w", err)
		}
		logger.InfoContext(ctx, "Event bus connected", attr.String("nats_url", cfg.NATS.URL))
	}

	router := newRouter(cfg)

	a := &App{
		cfg:    cfg,
		obs:    obs,
		db:     db,
		bus:    bus,
		router: router,
	}
	router.Get("/api/status", a.handleStatus)

	a.teamModule, err = team.NewModule(ctx, obs, db, bus, router)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to initialize team module: %w", err)
	}

	a.allianceModule, err = alliance.NewModule(ctx, obs, db, bus, router)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to initialize alliance module: %w", err)
	}

	a.statsModule, err = stats.NewModule(ctx, cfg, obs, db, bus, a.allianceModule.Service(), router)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to initialize stats module: %w", err)
	}

	a.fieldModule, err = field.NewModule(ctx, obs, db, router)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to initialize field module: %w", err)
	}

	if cfg.Jobs.Enabled {
		a.jobs, err = jobs.NewService(
			ctx,
			cfg.Postgres.DSN,
			cfg.Jobs.StatsRefreshInterval,
			logger,
			obs.Metrics,
			a.statsModule.Service(),
			a.statsModule.Repository(),
		)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to initialize job queue: %w", err)
		}
	}

	return a, nil
}

// Router returns the assembled HTTP handler.
func (a *App) Router() chi.Router {
	return a.router
}

// Close releases every component in reverse initialization order.
func (a *App) Close(ctx context.Context) {
	logger := a.obs.Logger

	if a.jobs != nil {
		if err := a.jobs.Stop(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to stop job queue", attr.Error(err))
		}
	}
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			logger.ErrorContext(ctx, "Failed to close event bus", attr.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.ErrorContext(ctx, "Failed to close database", attr.Error(err))
		}
	}
}

func newRouter(cfg *config.Config) chi.Router {
	router := chi.NewRouter()
	router.Use(appmiddleware.CORSMiddleware(cfg.HTTP.AllowedOrigins))
	router.Use(appmiddleware.RateLimitMiddleware(appmiddleware.NewIPRateLimiter(50, 100)))
	return router
}
