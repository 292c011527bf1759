package alliancedomain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	require.Len(t, b.Alliances, NumAlliances)
	for i, a := range b.Alliances {
		assert.Equal(t, i+1, a.Number)
		assert.Empty(t, a.Captain)
		assert.Empty(t, a.FirstPick)
		assert.Empty(t, a.SecondPick)
	}
	assert.False(t, b.Finalized)
}

func TestBoardAssign(t *testing.T) {
	t.Run("places team into slot", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.Assign(1, RoleCaptain, "254"))
		assert.Equal(t, "254", b.Alliances[0].Captain)
	})

	t.Run("moving a team vacates its old slot", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.Assign(1, RoleCaptain, "254"))
		require.NoError(t, b.Assign(3, RoleFirstPick, "254"))

		assert.Empty(t, b.Alliances[0].Captain)
		assert.Equal(t, "254", b.Alliances[2].FirstPick)

		num, role, ok := b.IsAssigned("254")
		require.True(t, ok)
		assert.Equal(t, 3, num)
		assert.Equal(t, RoleFirstPick, role)
	})

	t.Run("assigning over a slot displaces the occupant", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.Assign(1, RoleCaptain, "254"))
		require.NoError(t, b.Assign(1, RoleCaptain, "118"))

		assert.Equal(t, "118", b.Alliances[0].Captain)
		_, _, ok := b.IsAssigned("254")
		assert.False(t, ok)
	})

	t.Run("validation errors", func(t *testing.T) {
		b := NewBoard()
		assert.ErrorIs(t, b.Assign(0, RoleCaptain, "254"), ErrInvalidAlliance)
		assert.ErrorIs(t, b.Assign(9, RoleCaptain, "254"), ErrInvalidAlliance)
		assert.ErrorIs(t, b.Assign(1, Role("coach"), "254"), ErrInvalidRole)
		assert.ErrorIs(t, b.Assign(1, RoleCaptain, ""), ErrEmptyTeam)
	})

	t.Run("failed assign leaves the board untouched", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.Assign(2, RoleSecondPick, "714"))
		before := *b

		assert.Error(t, b.Assign(9, RoleCaptain, "714"))
		if diff := cmp.Diff(before, *b); diff != "" {
			t.Errorf("board changed after failed assign (-want +got):\n%s", diff)
		}
	})
}

func TestBoardUnassign(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Assign(1, RoleCaptain, "254"))

	require.NoError(t, b.Unassign(1, RoleCaptain))
	assert.Empty(t, b.Alliances[0].Captain)

	// Clearing again is a no-op.
	require.NoError(t, b.Unassign(1, RoleCaptain))

	assert.ErrorIs(t, b.Unassign(0, RoleCaptain), ErrInvalidAlliance)
	assert.ErrorIs(t, b.Unassign(1, Role("bench")), ErrInvalidRole)
}

func TestBoardFinalize(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Assign(1, RoleCaptain, "254"))

	b.Finalize()
	assert.True(t, b.Finalized)
	assert.ErrorIs(t, b.Assign(2, RoleCaptain, "118"), ErrFinalized)
	assert.ErrorIs(t, b.Unassign(1, RoleCaptain), ErrFinalized)

	// Finalize is idempotent.
	b.Finalize()
	assert.True(t, b.Finalized)

	b.Unfinalize()
	assert.False(t, b.Finalized)
	assert.NoError(t, b.Assign(2, RoleCaptain, "118"))
}

func TestBoardAssignedTeams(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Assign(2, RoleFirstPick, "118"))
	require.NoError(t, b.Assign(1, RoleCaptain, "254"))
	require.NoError(t, b.Assign(8, RoleSecondPick, "714"))

	assert.Equal(t, []string{"254", "118", "714"}, b.AssignedTeams())
}

func TestBoardNormalize(t *testing.T) {
	// A truncated document from an older save still yields a full board.
	b := &Board{Alliances: []Alliance{{Number: 1, Captain: "254"}}}
	b.Normalize()

	require.Len(t, b.Alliances, NumAlliances)
	assert.Equal(t, "254", b.Alliances[0].Captain)
	assert.Equal(t, 8, b.Alliances[7].Number)
}

func TestBoardRoundTrip(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Assign(1, RoleCaptain, "254"))
	require.NoError(t, b.Assign(4, RoleSecondPick, "1812"))
	b.Finalize()

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var loaded Board
	require.NoError(t, json.Unmarshal(data, &loaded))

	if diff := cmp.Diff(*b, loaded); diff != "" {
		t.Errorf("board round trip mismatch (-want +got):\n%s", diff)
	}
}
