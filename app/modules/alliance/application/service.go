package allianceservice

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

	alliancedomain "github.com/Panther-Scouting/reef-scout/app/modules/alliance/domain"
	alliancedb "github.com/Panther-Scouting/reef-scout/app/modules/alliance/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
	"github.com/Panther-Scouting/reef-scout/app/shared/eventbus"
	"github.com/Panther-Scouting/reef-scout/app/shared/events"
	"github.com/Panther-Scouting/reef-scout/app/shared/results"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// ErrMissingEventKey is returned when an operation has no event key.
var ErrMissingEventKey = errors.New("event key is required")

// SelectionView is the API shape of a board.
type SelectionView struct {
	EventKey  string               `json:"eventKey"`
	Board     alliancedomain.Board `json:"board"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// AllianceService implements the Service interface.
type AllianceService struct {
	repo    alliancedb.Repository
	logger  *slog.Logger
	metrics observability.ServiceMetrics
	tracer  trace.Tracer
	db      *bun.DB
	bus     eventbus.EventBus
}

// NewAllianceService creates a new AllianceService.
func NewAllianceService(
	repo alliancedb.Repository,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	bus eventbus.EventBus,
) *AllianceService {
	if logger == nil {
		logger = slog.Default()
	}
	if bus == nil {
		bus = eventbus.NewNoop()
	}
	return &AllianceService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
		bus:     bus,
	}
}

// GetSelection retrieves the saved board for an event. Events that were never
// saved yield alliancedb.ErrNotFound.
func (s *AllianceService) GetSelection(ctx context.Context, eventKey string) (*SelectionView, error) {
	return s.run(ctx, "GetSelection", eventKey, func(ctx context.Context, db bun.IDB) (results.OperationResult[*SelectionView, error], error) {
		selection, err := s.repo.GetByEventKey(ctx, db, eventKey)
		if err != nil {
			if errors.Is(err, alliancedb.ErrNotFound) {
				return results.FailureResult[*SelectionView, error](err), nil
			}
			return results.OperationResult[*SelectionView, error]{}, fmt.Errorf("failed to load selection: %w", err)
		}
		selection.Board.Normalize()
		return results.SuccessResult[*SelectionView, error](toSelectionView(selection)), nil
	})
}

// GetBoard retrieves the working board for an event. An event with no saved
// selection yields a fresh empty board rather than an error.
func (s *AllianceService) GetBoard(ctx context.Context, eventKey string) (*SelectionView, error) {
	return s.run(ctx, "GetBoard", eventKey, func(ctx context.Context, db bun.IDB) (results.OperationResult[*SelectionView, error], error) {
		selection, err := s.loadOrNew(ctx, db, eventKey)
		if err != nil {
			return results.OperationResult[*SelectionView, error]{}, err
		}
		return results.SuccessResult[*SelectionView, error](toSelectionView(selection)), nil
	})
}

// SaveSelection replaces the whole board for an event.
func (s *AllianceService) SaveSelection(ctx context.Context, eventKey string, board alliancedomain.Board) (*SelectionView, error) {
	return s.run(ctx, "SaveSelection", eventKey, func(ctx context.Context, db bun.IDB) (results.OperationResult[*SelectionView, error], error) {
		board.Normalize()
		selection := &alliancedb.AllianceSelection{
			EventKey: eventKey,
			Board:    board,
		}
		if err := s.repo.Upsert(ctx, db, selection); err != nil {
			return results.OperationResult[*SelectionView, error]{}, fmt.Errorf("failed to save selection: %w", err)
		}
		return results.SuccessResult[*SelectionView, error](toSelectionView(selection)), nil
	})
}

// Assign places a team into a slot, vacating any slot it held before. The
// read-modify-write happens inside one transaction.
func (s *AllianceService) Assign(ctx context.Context, eventKey string, allianceNumber int, role alliancedomain.Role, teamNumber string) (*SelectionView, error) {
	return s.mutateBoard(ctx, "Assign", eventKey, func(board *alliancedomain.Board) error {
		return board.Assign(allianceNumber, role, teamNumber)
	})
}

// Unassign clears a slot.
func (s *AllianceService) Unassign(ctx context.Context, eventKey string, allianceNumber int, role alliancedomain.Role) (*SelectionView, error) {
	return s.mutateBoard(ctx, "Unassign", eventKey, func(board *alliancedomain.Board) error {
		return board.Unassign(allianceNumber, role)
	})
}

// Finalize locks the board and announces the final alliances.
func (s *AllianceService) Finalize(ctx context.Context, eventKey string) (*SelectionView, error) {
	view, err := s.mutateBoard(ctx, "Finalize", eventKey, func(board *alliancedomain.Board) error {
		board.Finalize()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if pubErr := s.bus.Publish(ctx, events.AllianceFinalized, finalizedPayload(view)); pubErr != nil {
		s.logger.WarnContext(ctx, "Failed to publish finalize event",
			attr.String("event_key", eventKey),
			attr.Error(pubErr),
		)
	}
	return view, nil
}

// Unfinalize reopens a locked board.
func (s *AllianceService) Unfinalize(ctx context.Context, eventKey string) (*SelectionView, error) {
	return s.mutateBoard(ctx, "Unfinalize", eventKey, func(board *alliancedomain.Board) error {
		board.Unfinalize()
		return nil
	})
}

// mutateBoard loads the event's board, applies fn, and saves the result in
// the same transaction. Domain errors come back as failure results so they
// are not wrapped as infrastructure errors.
func (s *AllianceService) mutateBoard(ctx context.Context, operationName, eventKey string, fn func(*alliancedomain.Board) error) (*SelectionView, error) {
	return s.run(ctx, operationName, eventKey, func(ctx context.Context, db bun.IDB) (results.OperationResult[*SelectionView, error], error) {
		selection, err := s.loadOrNew(ctx, db, eventKey)
		if err != nil {
			return results.OperationResult[*SelectionView, error]{}, err
		}

		if err := fn(&selection.Board); err != nil {
			return results.FailureResult[*SelectionView, error](err), nil
		}

		if err := s.repo.Upsert(ctx, db, selection); err != nil {
			return results.OperationResult[*SelectionView, error]{}, fmt.Errorf("failed to save selection: %w", err)
		}
		return results.SuccessResult[*SelectionView, error](toSelectionView(selection)), nil
	})
}

func (s *AllianceService) loadOrNew(ctx context.Context, db bun.IDB, eventKey string) (*alliancedb.AllianceSelection, error) {
	selection, err := s.repo.GetByEventKey(ctx, db, eventKey)
	if err != nil {
		if errors.Is(err, alliancedb.ErrNotFound) {
			return &alliancedb.AllianceSelection{
				EventKey: eventKey,
				Board:    *alliancedomain.NewBoard(),
			}, nil
		}
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}
	selection.Board.Normalize()
	return selection, nil
}

// run wraps a selection operation with event key validation, telemetry, and
// a transaction.
func (s *AllianceService) run(ctx context.Context, operationName, eventKey string, fn func(ctx context.Context, db bun.IDB) (results.OperationResult[*SelectionView, error], error)) (*SelectionView, error) {
	if eventKey == "" {
		return nil, ErrMissingEventKey
	}

	result, err := withTelemetry(s, ctx, operationName, eventKey, func(ctx context.Context) (results.OperationResult[*SelectionView, error], error) {
		return runInTx(s, ctx, fn)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

func toSelectionView(selection *alliancedb.AllianceSelection) *SelectionView {
	return &SelectionView{
		EventKey:  selection.EventKey,
		Board:     selection.Board,
		UpdatedAt: selection.UpdatedAt,
	}
}

func finalizedPayload(view *SelectionView) events.AllianceFinalizedPayload {
	alliances := make([]events.AllianceSlotPayload, 0, len(view.Board.Alliances))
	for _, a := range view.Board.Alliances {
		alliances = append(alliances, events.AllianceSlotPayload{
			AllianceNumber: a.Number,
			Captain:        optional(a.Captain),
			FirstPick:      optional(a.FirstPick),
			SecondPick:     optional(a.SecondPick),
		})
	}
	return events.AllianceFinalizedPayload{
		EventKey:  view.EventKey,
		Alliances: alliances,
		Timestamp: time.Now(),
	}
}

func optional(team string) *string {
	if team == "" {
		return nil
	}
	return &team
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *AllianceService,
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
		s.metrics.RecordOperationAttempt(ctx, operationName, "AllianceService")
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "AllianceService", time.Since(startTime))
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
				s.metrics.RecordOperationFailure(ctx, operationName, "AllianceService")
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
			s.metrics.RecordOperationFailure(ctx, operationName, "AllianceService")
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
		s.metrics.RecordOperationSuccess(ctx, operationName, "AllianceService")
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *AllianceService,
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
