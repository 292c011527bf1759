package teamservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	teamdomain "github.com/Panther-Scouting/reef-scout/app/modules/team/domain"
	teamdb "github.com/Panther-Scouting/reef-scout/app/modules/team/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
	"github.com/Panther-Scouting/reef-scout/app/shared/eventbus"
	"github.com/Panther-Scouting/reef-scout/app/shared/events"
	"github.com/Panther-Scouting/reef-scout/app/shared/results"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// ErrMissingTeamNumber is returned when a submission has no team number.
var ErrMissingTeamNumber = errors.New("team number is required")

// TeamService implements the Service interface.
type TeamService struct {
	repo    teamdb.Repository
	logger  *slog.Logger
	metrics observability.ServiceMetrics
	tracer  trace.Tracer
	db      *bun.DB
	bus     eventbus.EventBus
}

// NewTeamService creates a new TeamService.
func NewTeamService(
	repo teamdb.Repository,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	bus eventbus.EventBus,
) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	if bus == nil {
		bus = eventbus.NewNoop()
	}
	return &TeamService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
		bus:     bus,
	}
}

// UpsertTeam creates or updates a team, rederiving its capabilities from the
// raw submission before the write.
func (s *TeamService) UpsertTeam(ctx context.Context, input TeamInput) (*TeamView, error) {
	upsertTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*TeamView, error], error) {
		return s.upsertTeamLogic(ctx, db, input)
	}

	result, err := withTelemetry(s, ctx, "UpsertTeam", input.TeamNumber, func(ctx context.Context) (results.OperationResult[*TeamView, error], error) {
		return runInTx(s, ctx, upsertTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}

	view := *result.Success
	if pubErr := s.bus.Publish(ctx, events.TeamUpdated, events.TeamUpdatedPayload{
		TeamNumber: view.TeamNumber,
		Name:       view.Name,
		UpdatedAt:  view.UpdatedAt,
	}); pubErr != nil {
		s.logger.WarnContext(ctx, "Failed to publish team update event",
			attr.String("team_number", view.TeamNumber),
			attr.Error(pubErr),
		)
	}
	return view, nil
}

// upsertTeamLogic contains the core logic.
func (s *TeamService) upsertTeamLogic(ctx context.Context, db bun.IDB, input TeamInput) (results.OperationResult[*TeamView, error], error) {
	if input.TeamNumber == "" {
		return results.FailureResult[*TeamView, error](ErrMissingTeamNumber), nil
	}

	team := &teamdb.Team{
		TeamNumber:   input.TeamNumber,
		Name:         input.Name,
		Raw:          input.Raw,
		Capabilities: teamdomain.DeriveCapabilities(input.Raw),
	}
	if err := s.repo.Upsert(ctx, db, team); err != nil {
		return results.OperationResult[*TeamView, error]{}, fmt.Errorf("failed to upsert team: %w", err)
	}

	return results.SuccessResult[*TeamView, error](toView(team)), nil
}

// GetTeam retrieves a single team by its number.
func (s *TeamService) GetTeam(ctx context.Context, teamNumber string) (*TeamView, error) {
	getTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*TeamView, error], error) {
		return s.getTeamLogic(ctx, db, teamNumber)
	}

	result, err := withTelemetry(s, ctx, "GetTeam", teamNumber, func(ctx context.Context) (results.OperationResult[*TeamView, error], error) {
		return runInTx(s, ctx, getTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// getTeamLogic contains the core logic.
func (s *TeamService) getTeamLogic(ctx context.Context, db bun.IDB, teamNumber string) (results.OperationResult[*TeamView, error], error) {
	team, err := s.repo.GetByNumber(ctx, db, teamNumber)
	if err != nil {
		if errors.Is(err, teamdb.ErrNotFound) {
			return results.FailureResult[*TeamView, error](err), nil
		}
		return results.OperationResult[*TeamView, error]{}, fmt.Errorf("failed to get team: %w", err)
	}
	return results.SuccessResult[*TeamView, error](toView(team)), nil
}

// ListTeams retrieves all teams ordered by team number.
func (s *TeamService) ListTeams(ctx context.Context) ([]TeamView, error) {
	listTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[[]TeamView, error], error) {
		return s.listTeamsLogic(ctx, db)
	}

	result, err := withTelemetry(s, ctx, "ListTeams", "all", func(ctx context.Context) (results.OperationResult[[]TeamView, error], error) {
		return runInTx(s, ctx, listTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// listTeamsLogic contains the core logic.
func (s *TeamService) listTeamsLogic(ctx context.Context, db bun.IDB) (results.OperationResult[[]TeamView, error], error) {
	teams, err := s.repo.List(ctx, db)
	if err != nil {
		return results.OperationResult[[]TeamView, error]{}, fmt.Errorf("failed to list teams: %w", err)
	}

	views := make([]TeamView, 0, len(teams))
	for i := range teams {
		views = append(views, *toView(&teams[i]))
	}
	return results.SuccessResult[[]TeamView, error](views), nil
}

func toView(team *teamdb.Team) *TeamView {
	return &TeamView{
		TeamNumber:   team.TeamNumber,
		Name:         team.Name,
		Raw:          team.Raw,
		Capabilities: team.Capabilities,
		UpdatedAt:    team.UpdatedAt,
	}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *TeamService,
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
		s.metrics.RecordOperationAttempt(ctx, operationName, "TeamService")
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "TeamService", time.Since(startTime))
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
				s.metrics.RecordOperationFailure(ctx, operationName, "TeamService")
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
			s.metrics.RecordOperationFailure(ctx, operationName, "TeamService")
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
		s.metrics.RecordOperationSuccess(ctx, operationName, "TeamService")
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *TeamService,
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
