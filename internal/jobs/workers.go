package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	statsservice "github.com/Panther-Scouting/reef-scout/app/modules/stats/application"
	statsdb "github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
)

// RankingRefresher is the slice of the stats service the workers consume.
type RankingRefresher interface {
	RefreshRankings(ctx context.Context, eventKey string) (*statsservice.RankingsView, error)
}

// StatsRefreshWorker refetches one event's ranking snapshot.
type StatsRefreshWorker struct {
	river.WorkerDefaults[StatsRefreshArgs]
	logger *slog.Logger
	stats  RankingRefresher
}

// NewStatsRefreshWorker creates a new StatsRefreshWorker.
func NewStatsRefreshWorker(logger *slog.Logger, stats RankingRefresher) *StatsRefreshWorker {
	return &StatsRefreshWorker{
		logger: logger,
		stats:  stats,
	}
}

func (w *StatsRefreshWorker) Work(ctx context.Context, job *river.Job[StatsRefreshArgs]) error {
	w.logger.InfoContext(ctx, "Refreshing ranking snapshot",
		attr.String("event_key", job.Args.EventKey),
		attr.Int("attempt", job.Attempt),
	)

	view, err := w.stats.RefreshRankings(ctx, job.Args.EventKey)
	if err != nil {
		return fmt.Errorf("failed to refresh rankings for %s: %w", job.Args.EventKey, err)
	}

	w.logger.InfoContext(ctx, "Ranking snapshot refreshed",
		attr.String("event_key", job.Args.EventKey),
		attr.Int("standings", len(view.Standings)),
		attr.Bool("partial", view.Partial),
	)
	return nil
}

// StatsSweepWorker enqueues a refresh job for every event with a stored
// snapshot. River runs it on the configured periodic schedule.
type StatsSweepWorker struct {
	river.WorkerDefaults[StatsSweepArgs]
	logger *slog.Logger
	repo   statsdb.Repository
}

// NewStatsSweepWorker creates a new StatsSweepWorker.
func NewStatsSweepWorker(logger *slog.Logger, repo statsdb.Repository) *StatsSweepWorker {
	return &StatsSweepWorker{
		logger: logger,
		repo:   repo,
	}
}

func (w *StatsSweepWorker) Work(ctx context.Context, job *river.Job[StatsSweepArgs]) error {
	keys, err := w.repo.ListEventKeys(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list snapshot event keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	client := river.ClientFromContext[pgx.Tx](ctx)
	params := make([]river.InsertManyParams, 0, len(keys))
	for _, key := range keys {
		params = append(params, river.InsertManyParams{
			Args:       StatsRefreshArgs{EventKey: key},
			InsertOpts: &river.InsertOpts{UniqueOpts: river.UniqueOpts{ByArgs: true}},
		})
	}

	if _, err := client.InsertMany(ctx, params); err != nil {
		return fmt.Errorf("failed to enqueue refresh jobs: %w", err)
	}

	w.logger.InfoContext(ctx, "Enqueued ranking refreshes", attr.Int("events", len(keys)))
	return nil
}
