package fieldservice

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	fielddomain "github.com/Panther-Scouting/reef-scout/app/modules/field/domain"
	fielddb "github.com/Panther-Scouting/reef-scout/app/modules/field/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// memoryRepo keeps layouts in a map so multi-step flows can be tested.
type memoryRepo struct {
	fielddb.FakeRepository
	layouts map[string]*fielddb.FieldLayout
}

func newMemoryRepo() *memoryRepo {
	r := &memoryRepo{layouts: make(map[string]*fielddb.FieldLayout)}
	r.UpsertFn = func(ctx context.Context, db bun.IDB, layout *fielddb.FieldLayout) error {
		saved := *layout
		r.layouts[layout.EventKey] = &saved
		return nil
	}
	r.GetByEventKeyFn = func(ctx context.Context, db bun.IDB, eventKey string) (*fielddb.FieldLayout, error) {
		if l, ok := r.layouts[eventKey]; ok {
			loaded := *l
			return &loaded, nil
		}
		return nil, fielddb.ErrNotFound
	}
	return r
}

func newTestService(repo fielddb.Repository) *FieldService {
	return NewFieldService(
		repo,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewNoopMetrics(),
		nil,
		nil,
	)
}

func TestGetLayoutUnknownEventYieldsEmptyLayout(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	view, err := svc.GetLayout(context.Background(), "2026casd")
	require.NoError(t, err)
	assert.Equal(t, "2026casd", view.EventKey)
	assert.Empty(t, view.Layout.BlueTeams)
	assert.Empty(t, view.Positions)
}

func TestAddTeamResolvesCoordinates(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	view, err := svc.AddTeam(ctx, "2026casd", "254", fielddomain.AllianceBlue)
	require.NoError(t, err)

	require.Len(t, view.Positions, 1)
	pos := view.Positions[0]
	assert.Equal(t, "254", pos.TeamNumber)
	assert.Equal(t, fielddomain.AllianceBlue, pos.Alliance)
	assert.Equal(t, fielddomain.PositionMiddle, pos.Position)
	assert.Equal(t, fielddomain.Point{X: 40, Y: 50}, pos.Point)
	assert.False(t, pos.Custom)
}

func TestCrossAllianceMovePersists(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddTeam(ctx, "2026casd", "254", fielddomain.AllianceBlue)
	require.NoError(t, err)
	_, err = svc.AddTeam(ctx, "2026casd", "254", fielddomain.AllianceRed)
	require.NoError(t, err)

	view, err := svc.GetLayout(ctx, "2026casd")
	require.NoError(t, err)
	assert.Empty(t, view.Layout.BlueTeams)
	assert.Equal(t, []string{"254"}, view.Layout.RedTeams)
}

func TestSymbolicPositionClearsCustom(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddTeam(ctx, "2026casd", "714", fielddomain.AllianceRed)
	require.NoError(t, err)

	view, err := svc.SetCustomPosition(ctx, "2026casd", "714", 55, 60)
	require.NoError(t, err)
	assert.True(t, view.Positions[0].Custom)
	assert.Equal(t, fielddomain.Point{X: 55, Y: 60}, view.Positions[0].Point)

	view, err = svc.SetPosition(ctx, "2026casd", "714", fielddomain.PositionLeft)
	require.NoError(t, err)
	assert.False(t, view.Positions[0].Custom)
	assert.Equal(t, fielddomain.Point{X: 67, Y: 86}, view.Positions[0].Point)
}

func TestDomainErrorsSurface(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddTeam(ctx, "2026casd", "", fielddomain.AllianceBlue)
	assert.ErrorIs(t, err, fielddomain.ErrEmptyTeam)

	_, err = svc.SetPosition(ctx, "2026casd", "9999", fielddomain.PositionLeft)
	assert.ErrorIs(t, err, fielddomain.ErrTeamNotOnField)

	_, err = svc.GetLayout(ctx, "")
	assert.ErrorIs(t, err, ErrMissingEventKey)
}

func TestFullSideDropsOldestTeam(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	for _, team := range []string{"1", "2", "3", "4"} {
		_, err := svc.AddTeam(ctx, "2026casd", team, fielddomain.AllianceBlue)
		require.NoError(t, err)
	}

	view, err := svc.GetLayout(ctx, "2026casd")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "4"}, view.Layout.BlueTeams)
}

func TestCustomPositionClampsToField(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddTeam(ctx, "2026casd", "254", fielddomain.AllianceBlue)
	require.NoError(t, err)

	view, err := svc.SetCustomPosition(ctx, "2026casd", "254", -10, 180)
	require.NoError(t, err)
	assert.Equal(t, fielddomain.Point{X: 0, Y: 100}, view.Positions[0].Point)
}

func TestRemoveTeam(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.AddTeam(ctx, "2026casd", "254", fielddomain.AllianceBlue)
	require.NoError(t, err)

	view, err := svc.RemoveTeam(ctx, "2026casd", "254")
	require.NoError(t, err)
	assert.Empty(t, view.Positions)
}
