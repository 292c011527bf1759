package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	statsdb "github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// Service runs the background job queue on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics observability.ServiceMetrics
}

// NewService creates the River client with the stats refresh workers
// registered. A refreshInterval <= 0 disables the periodic sweep.
func NewService(
	ctx context.Context,
	dsn string,
	refreshInterval time.Duration,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	stats RankingRefresher,
	statsRepo statsdb.Repository,
) (*Service, error) {
	ctxLogger := logger.With(attr.String("component", "river_queue"))

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	ctxLogger.InfoContext(ctx, "Initializing job queue service")

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewStatsRefreshWorker(ctxLogger, stats))
	river.AddWorker(workers, NewStatsSweepWorker(ctxLogger, statsRepo))

	var periodicJobs []*river.PeriodicJob
	if refreshInterval > 0 {
		periodicJobs = append(periodicJobs, river.NewPeriodicJob(
			river.PeriodicInterval(refreshInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				return StatsSweepArgs{}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		))
	}

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		Workers:      workers,
		PeriodicJobs: periodicJobs,
	})
	if err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		metrics: metrics,
	}, nil
}

// Start starts the queue workers.
func (s *Service) Start(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Starting job queue service")
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

// Stop drains the workers and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Stopping job queue service")
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	return nil
}
