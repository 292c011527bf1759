package statsservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	allianceservice "github.com/Panther-Scouting/reef-scout/app/modules/alliance/application"
	statsdomain "github.com/Panther-Scouting/reef-scout/app/modules/stats/domain"
	statsdb "github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/tba"
	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
	"github.com/Panther-Scouting/reef-scout/app/shared/eventbus"
	"github.com/Panther-Scouting/reef-scout/app/shared/events"
	"github.com/Panther-Scouting/reef-scout/app/shared/results"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// ErrMissingEventKey is returned when an operation has no event key.
var ErrMissingEventKey = errors.New("event key is required")

// RankingsView is the API shape of an event's standings. Partial is set when
// the contribution stats or the team roster could not be fetched; the
// standings then carry zero OPRs or number-only names.
type RankingsView struct {
	EventKey    string                 `json:"eventKey"`
	Standings   []statsdomain.Standing `json:"standings"`
	Partial     bool                   `json:"partial"`
	RefreshedAt time.Time              `json:"refreshedAt"`
}

// SelectionSource reports the current alliance board so standings can carry
// selected flags.
type SelectionSource interface {
	GetBoard(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error)
}

// StatsService implements the Service interface.
type StatsService struct {
	repo       statsdb.Repository
	source     RankingSource
	selections SelectionSource
	logger     *slog.Logger
	metrics    observability.ServiceMetrics
	tracer     trace.Tracer
	db         *bun.DB
	bus        eventbus.EventBus
}

// NewStatsService creates a new StatsService. selections may be nil when the
// alliance module is not wired in; standings then carry no selected flags.
func NewStatsService(
	repo statsdb.Repository,
	source RankingSource,
	selections SelectionSource,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	bus eventbus.EventBus,
) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	if bus == nil {
		bus = eventbus.NewNoop()
	}
	return &StatsService{
		repo:       repo,
		source:     source,
		selections: selections,
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
		db:         db,
		bus:        bus,
	}
}

// GetRankings returns the stored standings for an event, fetching them on
// first access.
func (s *StatsService) GetRankings(ctx context.Context, eventKey string) (*RankingsView, error) {
	if eventKey == "" {
		return nil, ErrMissingEventKey
	}

	result, err := withTelemetry(s, ctx, "GetRankings", eventKey, func(ctx context.Context) (results.OperationResult[*RankingsView, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*RankingsView, error], error) {
			snapshot, err := s.repo.GetByEventKey(ctx, db, eventKey)
			if err != nil {
				if errors.Is(err, statsdb.ErrNotFound) {
					return results.FailureResult[*RankingsView, error](err), nil
				}
				return results.OperationResult[*RankingsView, error]{}, fmt.Errorf("failed to load snapshot: %w", err)
			}
			view := s.viewFromSnapshot(ctx, snapshot)
			return results.SuccessResult[*RankingsView, error](view), nil
		})
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return s.RefreshRankings(ctx, eventKey)
	}
	return *result.Success, nil
}

// RefreshRankings refetches the event's ranking data and replaces the stored
// snapshot.
func (s *StatsService) RefreshRankings(ctx context.Context, eventKey string) (*RankingsView, error) {
	if eventKey == "" {
		return nil, ErrMissingEventKey
	}

	result, err := withTelemetry(s, ctx, "RefreshRankings", eventKey, func(ctx context.Context) (results.OperationResult[*RankingsView, error], error) {
		view, err := s.refreshLogic(ctx, eventKey)
		if err != nil {
			return results.OperationResult[*RankingsView, error]{}, err
		}
		return results.SuccessResult[*RankingsView, error](view), nil
	})
	if err != nil {
		return nil, err
	}
	view := *result.Success

	if pubErr := s.bus.Publish(ctx, events.StatsSnapshotRefreshed, events.StatsSnapshotRefreshedPayload{
		EventKey:    eventKey,
		TeamCount:   len(view.Standings),
		RefreshedAt: view.RefreshedAt,
	}); pubErr != nil {
		s.logger.WarnContext(ctx, "Failed to publish stats refresh event",
			attr.String("event_key", eventKey),
			attr.Error(pubErr),
		)
	}
	return view, nil
}

// refreshLogic fetches the three ranking endpoints in parallel. The ranking
// table is required; contribution stats and the roster degrade to partial
// data when their fetches fail.
func (s *StatsService) refreshLogic(ctx context.Context, eventKey string) (*RankingsView, error) {
	var (
		wg       sync.WaitGroup
		rankings *tba.RankingsResponse
		oprs     *tba.OPRsResponse
		teams    []tba.EventTeam

		rankingsErr, oprsErr, teamsErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		rankings, rankingsErr = s.source.Rankings(ctx, eventKey)
	}()
	go func() {
		defer wg.Done()
		oprs, oprsErr = s.source.OPRs(ctx, eventKey)
	}()
	go func() {
		defer wg.Done()
		teams, teamsErr = s.source.Teams(ctx, eventKey)
	}()
	wg.Wait()

	if rankingsErr != nil {
		return nil, fmt.Errorf("failed to fetch rankings: %w", rankingsErr)
	}

	partial := false
	if oprsErr != nil {
		partial = true
		s.logger.WarnContext(ctx, "Contribution stats unavailable, continuing without",
			attr.String("event_key", eventKey),
			attr.Error(oprsErr),
		)
	}
	if teamsErr != nil {
		partial = true
		s.logger.WarnContext(ctx, "Team roster unavailable, continuing without",
			attr.String("event_key", eventKey),
			attr.Error(teamsErr),
		)
	}

	snapshot := &statsdb.Snapshot{
		EventKey:  eventKey,
		Standings: statsdomain.Normalize(rankings, oprs, teams),
	}
	if err := s.repo.Upsert(ctx, nil, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	view := s.viewFromSnapshot(ctx, snapshot)
	view.Partial = partial
	return view, nil
}

// viewFromSnapshot copies a snapshot into its API shape and overlays the
// selected flags from the alliance board.
func (s *StatsService) viewFromSnapshot(ctx context.Context, snapshot *statsdb.Snapshot) *RankingsView {
	standings := make([]statsdomain.Standing, len(snapshot.Standings))
	copy(standings, snapshot.Standings)

	if s.selections != nil {
		if selection, err := s.selections.GetBoard(ctx, snapshot.EventKey); err == nil {
			assigned := make(map[string]bool)
			for _, team := range selection.Board.AssignedTeams() {
				assigned[team] = true
			}
			for i := range standings {
				standings[i].Selected = assigned[standings[i].TeamNumber]
			}
		} else {
			s.logger.WarnContext(ctx, "Could not overlay selection flags",
				attr.String("event_key", snapshot.EventKey),
				attr.Error(err),
			)
		}
	}

	return &RankingsView{
		EventKey:    snapshot.EventKey,
		Standings:   standings,
		RefreshedAt: snapshot.RefreshedAt,
	}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *StatsService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, "StatsService")
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "StatsService", time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, "StatsService")
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, "StatsService")
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, "StatsService")
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *StatsService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
