package allianceservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	alliancedomain "github.com/Panther-Scouting/reef-scout/app/modules/alliance/domain"
	alliancedb "github.com/Panther-Scouting/reef-scout/app/modules/alliance/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/app/shared/eventbus"
	"github.com/Panther-Scouting/reef-scout/internal/observability"
)

// memoryRepo keeps selections in a map so multi-step flows can be tested.
type memoryRepo struct {
	alliancedb.FakeRepository
	selections map[string]*alliancedb.AllianceSelection
}

func newMemoryRepo() *memoryRepo {
	r := &memoryRepo{selections: make(map[string]*alliancedb.AllianceSelection)}
	r.UpsertFn = func(ctx context.Context, db bun.IDB, selection *alliancedb.AllianceSelection) error {
		saved := *selection
		r.selections[selection.EventKey] = &saved
		return nil
	}
	r.GetByEventKeyFn = func(ctx context.Context, db bun.IDB, eventKey string) (*alliancedb.AllianceSelection, error) {
		if s, ok := r.selections[eventKey]; ok {
			loaded := *s
			return &loaded, nil
		}
		return nil, alliancedb.ErrNotFound
	}
	return r
}

func newTestService(repo alliancedb.Repository, bus eventbus.EventBus) *AllianceService {
	return NewAllianceService(
		repo,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewNoopMetrics(),
		nil,
		nil,
		bus,
	)
}

// recordingBus captures published topics and payloads.
type recordingBus struct {
	topics   []string
	payloads []any
}

func (b *recordingBus) Publish(ctx context.Context, topic string, payload any) error {
	b.topics = append(b.topics, topic)
	b.payloads = append(b.payloads, payload)
	return nil
}

func (b *recordingBus) Close() error { return nil }

func TestGetBoardUnknownEventYieldsEmptyBoard(t *testing.T) {
	svc := newTestService(newMemoryRepo(), nil)

	view, err := svc.GetBoard(context.Background(), "2026casd")
	require.NoError(t, err)
	assert.Equal(t, "2026casd", view.EventKey)
	assert.Len(t, view.Board.Alliances, alliancedomain.NumAlliances)
	assert.False(t, view.Board.Finalized)
}

func TestGetSelectionUnknownEventNotFound(t *testing.T) {
	svc := newTestService(newMemoryRepo(), nil)

	_, err := svc.GetSelection(context.Background(), "2026casd")
	assert.ErrorIs(t, err, alliancedb.ErrNotFound)
}

func TestEventKeyRequired(t *testing.T) {
	svc := newTestService(newMemoryRepo(), nil)

	_, err := svc.GetSelection(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingEventKey)

	_, err = svc.Assign(context.Background(), "", 1, alliancedomain.RoleCaptain, "254")
	assert.ErrorIs(t, err, ErrMissingEventKey)
}

func TestAssignMoveAcrossSlots(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.Assign(ctx, "2026casd", 1, alliancedomain.RoleCaptain, "254")
	require.NoError(t, err)

	view, err := svc.Assign(ctx, "2026casd", 2, alliancedomain.RoleFirstPick, "254")
	require.NoError(t, err)

	assert.Empty(t, view.Board.Alliances[0].Captain)
	assert.Equal(t, "254", view.Board.Alliances[1].FirstPick)

	// The move was persisted, not just returned.
	saved, err := svc.GetSelection(ctx, "2026casd")
	require.NoError(t, err)
	assert.Equal(t, "254", saved.Board.Alliances[1].FirstPick)
}

func TestAssignDomainErrors(t *testing.T) {
	svc := newTestService(newMemoryRepo(), nil)
	ctx := context.Background()

	_, err := svc.Assign(ctx, "2026casd", 9, alliancedomain.RoleCaptain, "254")
	assert.ErrorIs(t, err, alliancedomain.ErrInvalidAlliance)

	_, err = svc.Assign(ctx, "2026casd", 1, alliancedomain.Role("coach"), "254")
	assert.ErrorIs(t, err, alliancedomain.ErrInvalidRole)

	_, err = svc.Assign(ctx, "2026casd", 1, alliancedomain.RoleCaptain, "")
	assert.ErrorIs(t, err, alliancedomain.ErrEmptyTeam)
}

func TestFinalizeLifecycle(t *testing.T) {
	repo := newMemoryRepo()
	bus := &recordingBus{}
	svc := newTestService(repo, bus)
	ctx := context.Background()

	_, err := svc.Assign(ctx, "2026casd", 1, alliancedomain.RoleCaptain, "254")
	require.NoError(t, err)

	view, err := svc.Finalize(ctx, "2026casd")
	require.NoError(t, err)
	assert.True(t, view.Board.Finalized)
	require.Len(t, bus.topics, 1)
	assert.Equal(t, "scout.alliance.finalized", bus.topics[0])

	// Edits are rejected while finalized.
	_, err = svc.Assign(ctx, "2026casd", 2, alliancedomain.RoleCaptain, "118")
	assert.ErrorIs(t, err, alliancedomain.ErrFinalized)

	// Reopening allows edits again.
	view, err = svc.Unfinalize(ctx, "2026casd")
	require.NoError(t, err)
	assert.False(t, view.Board.Finalized)

	_, err = svc.Assign(ctx, "2026casd", 2, alliancedomain.RoleCaptain, "118")
	assert.NoError(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	board := *alliancedomain.NewBoard()
	require.NoError(t, board.Assign(1, alliancedomain.RoleCaptain, "254"))
	require.NoError(t, board.Assign(5, alliancedomain.RoleSecondPick, "1812"))

	saved, err := svc.SaveSelection(ctx, "2026casd", board)
	require.NoError(t, err)

	loaded, err := svc.GetSelection(ctx, "2026casd")
	require.NoError(t, err)

	if diff := cmp.Diff(saved.Board, loaded.Board); diff != "" {
		t.Errorf("board round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRepositoryErrorSurfacesWrapped(t *testing.T) {
	repo := &alliancedb.FakeRepository{
		GetByEventKeyFn: func(ctx context.Context, db bun.IDB, eventKey string) (*alliancedb.AllianceSelection, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.GetSelection(context.Background(), "2026casd")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "GetSelection")
}
