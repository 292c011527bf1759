package fieldservice

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

	fielddomain "github.com/Panther-Scouting/reef-scout/app/modules/field/domain"
	fielddb "github.com/Panther-Scouting/reef-scout/app/modules/field/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
	"github.com/Panther-Scouting/reef-scout/app/shared/results"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// ErrMissingEventKey is returned when an operation has no event key.
var ErrMissingEventKey = errors.New("event key is required")

// TeamPosition is one team's resolved spot on the field.
type TeamPosition struct {
	TeamNumber string               `json:"teamNumber"`
	Alliance   fielddomain.Alliance `json:"alliance"`
	Position   string               `json:"position"`
	Point      fielddomain.Point    `json:"point"`
	Custom     bool                 `json:"custom"`
}

// LayoutView is the API shape of a field layout, with every placement
// resolved to coordinates.
type LayoutView struct {
	EventKey  string             `json:"eventKey"`
	Layout    fielddomain.Layout `json:"layout"`
	Positions []TeamPosition     `json:"positions"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// FieldService implements the Service interface.
type FieldService struct {
	repo    fielddb.Repository
	logger  *slog.Logger
	metrics observability.ServiceMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewFieldService creates a new FieldService.
func NewFieldService(
	repo fielddb.Repository,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *FieldService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

// GetLayout retrieves the layout for an event.
func (s *FieldService) GetLayout(ctx context.Context, eventKey string) (*LayoutView, error) {
	return s.run(ctx, "GetLayout", eventKey, func(ctx context.Context, db bun.IDB) (results.OperationResult[*LayoutView, error], error) {
		layout, err := s.loadOrNew(ctx, db, eventKey)
		if err != nil {
			return results.OperationResult[*LayoutView, error]{}, err
		}
		return results.SuccessResult[*LayoutView, error](toLayoutView(layout)), nil
	})
}

// AddTeam drops a team onto one side of the field.
func (s *FieldService) AddTeam(ctx context.Context, eventKey, teamNumber string, alliance fielddomain.Alliance) (*LayoutView, error) {
	return s.mutateLayout(ctx, "AddTeam", eventKey, func(layout *fielddomain.Layout) error {
		return layout.AddTeam(teamNumber, alliance)
	})
}

// RemoveTeam takes a team off the field.
func (s *FieldService) RemoveTeam(ctx context.Context, eventKey, teamNumber string) (*LayoutView, error) {
	return s.mutateLayout(ctx, "RemoveTeam", eventKey, func(layout *fielddomain.Layout) error {
		layout.RemoveTeam(teamNumber)
		return nil
	})
}

// SetPosition moves a team to a symbolic starting position.
func (s *FieldService) SetPosition(ctx context.Context, eventKey, teamNumber, position string) (*LayoutView, error) {
	return s.mutateLayout(ctx, "SetPosition", eventKey, func(layout *fielddomain.Layout) error {
		return layout.SetPosition(teamNumber, position)
	})
}

// SetCustomPosition drops a team at free-form field coordinates.
func (s *FieldService) SetCustomPosition(ctx context.Context, eventKey, teamNumber string, x, y float64) (*LayoutView, error) {
	return s.mutateLayout(ctx, "SetCustomPosition", eventKey, func(layout *fielddomain.Layout) error {
		return layout.SetCustomPosition(teamNumber, x, y)
	})
}

// mutateLayout loads the event's layout, applies fn, and saves the result in
// the same transaction.
func (s *FieldService) mutateLayout(ctx context.Context, operationName, eventKey string, fn func(*fielddomain.Layout) error) (*LayoutView, error) {
	return s.run(ctx, operationName, eventKey, func(ctx context.Context, db bun.IDB) (results.OperationResult[*LayoutView, error], error) {
		layout, err := s.loadOrNew(ctx, db, eventKey)
		if err != nil {
			return results.OperationResult[*LayoutView, error]{}, err
		}

		if err := fn(&layout.Layout); err != nil {
			return results.FailureResult[*LayoutView, error](err), nil
		}

		if err := s.repo.Upsert(ctx, db, layout); err != nil {
			return results.OperationResult[*LayoutView, error]{}, fmt.Errorf("failed to save layout: %w", err)
		}
		return results.SuccessResult[*LayoutView, error](toLayoutView(layout)), nil
	})
}

func (s *FieldService) loadOrNew(ctx context.Context, db bun.IDB, eventKey string) (*fielddb.FieldLayout, error) {
	layout, err := s.repo.GetByEventKey(ctx, db, eventKey)
	if err != nil {
		if errors.Is(err, fielddb.ErrNotFound) {
			return &fielddb.FieldLayout{
				EventKey: eventKey,
				Layout:   *fielddomain.NewLayout(),
			}, nil
		}
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	layout.Layout.Normalize()
	return layout, nil
}

func (s *FieldService) run(ctx context.Context, operationName, eventKey string, fn func(ctx context.Context, db bun.IDB) (results.OperationResult[*LayoutView, error], error)) (*LayoutView, error) {
	if eventKey == "" {
		return nil, ErrMissingEventKey
	}

	result, err := withTelemetry(s, ctx, operationName, eventKey, func(ctx context.Context) (results.OperationResult[*LayoutView, error], error) {
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

func toLayoutView(layout *fielddb.FieldLayout) *LayoutView {
	view := &LayoutView{
		EventKey:  layout.EventKey,
		Layout:    layout.Layout,
		UpdatedAt: layout.UpdatedAt,
	}

	appendSide := func(teams []string, alliance fielddomain.Alliance) {
		for _, team := range teams {
			placement := layout.Layout.Placements[team]
			view.Positions = append(view.Positions, TeamPosition{
				TeamNumber: team,
				Alliance:   alliance,
				Position:   placement.Position,
				Point:      placement.Coordinates(alliance),
				Custom:     placement.Custom != nil,
			})
		}
	}
	appendSide(layout.Layout.BlueTeams, fielddomain.AllianceBlue)
	appendSide(layout.Layout.RedTeams, fielddomain.AllianceRed)
	return view
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *FieldService,
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
		s.metrics.RecordOperationAttempt(ctx, operationName, "FieldService")
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "FieldService", time.Since(startTime))
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
				s.metrics.RecordOperationFailure(ctx, operationName, "FieldService")
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
			s.metrics.RecordOperationFailure(ctx, operationName, "FieldService")
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
		s.metrics.RecordOperationSuccess(ctx, operationName, "FieldService")
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *FieldService,
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
