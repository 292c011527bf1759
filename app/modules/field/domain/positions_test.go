package fielddomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTeam(t *testing.T) {
	t.Run("adds to a side with a default middle placement", func(t *testing.T) {
		l := NewLayout()
		require.NoError(t, l.AddTeam("254", AllianceBlue))

		assert.Equal(t, []string{"254"}, l.BlueTeams)
		assert.Equal(t, Placement{Position: PositionMiddle}, l.Placements["254"])
	})

	t.Run("re-adding to the same side is a no-op", func(t *testing.T) {
		l := NewLayout()
		require.NoError(t, l.AddTeam("254", AllianceBlue))
		require.NoError(t, l.SetPosition("254", PositionLeft))

		require.NoError(t, l.AddTeam("254", AllianceBlue))
		assert.Equal(t, []string{"254"}, l.BlueTeams)
		// Placement survives the repeated drop.
		assert.Equal(t, PositionLeft, l.Placements["254"].Position)
	})

	t.Run("moving across alliances removes from the other side", func(t *testing.T) {
		l := NewLayout()
		require.NoError(t, l.AddTeam("254", AllianceBlue))
		require.NoError(t, l.AddTeam("254", AllianceRed))

		assert.Empty(t, l.BlueTeams)
		assert.Equal(t, []string{"254"}, l.RedTeams)
	})

	t.Run("full side drops the oldest team", func(t *testing.T) {
		l := NewLayout()
		require.NoError(t, l.AddTeam("254", AllianceBlue))
		require.NoError(t, l.AddTeam("118", AllianceBlue))
		require.NoError(t, l.AddTeam("714", AllianceBlue))
		require.NoError(t, l.AddTeam("1812", AllianceBlue))

		assert.Equal(t, []string{"118", "714", "1812"}, l.BlueTeams)
		_, hasDropped := l.Placements["254"]
		assert.False(t, hasDropped)
	})

	t.Run("validation", func(t *testing.T) {
		l := NewLayout()
		assert.ErrorIs(t, l.AddTeam("", AllianceBlue), ErrEmptyTeam)
		assert.ErrorIs(t, l.AddTeam("254", Alliance("green")), ErrInvalidAlliance)
	})
}

func TestRemoveTeam(t *testing.T) {
	l := NewLayout()
	require.NoError(t, l.AddTeam("254", AllianceRed))

	l.RemoveTeam("254")
	assert.Empty(t, l.RedTeams)
	_, ok := l.Placements["254"]
	assert.False(t, ok)

	// Removing an absent team is harmless.
	l.RemoveTeam("9999")
}

func TestSetPosition(t *testing.T) {
	l := NewLayout()
	require.NoError(t, l.AddTeam("254", AllianceBlue))

	require.NoError(t, l.SetCustomPosition("254", 55, 60))
	require.NotNil(t, l.Placements["254"].Custom)

	// Choosing a symbolic position clears the custom one.
	require.NoError(t, l.SetPosition("254", PositionRight))
	assert.Equal(t, PositionRight, l.Placements["254"].Position)
	assert.Nil(t, l.Placements["254"].Custom)

	assert.ErrorIs(t, l.SetPosition("9999", PositionLeft), ErrTeamNotOnField)
}

func TestSetCustomPositionClamps(t *testing.T) {
	l := NewLayout()
	require.NoError(t, l.AddTeam("254", AllianceBlue))

	require.NoError(t, l.SetCustomPosition("254", -10, 140))
	custom := l.Placements["254"].Custom
	require.NotNil(t, custom)
	assert.Equal(t, 0.0, custom.X)
	assert.Equal(t, 100.0, custom.Y)

	assert.ErrorIs(t, l.SetCustomPosition("9999", 10, 10), ErrTeamNotOnField)
}

func TestCoordinates(t *testing.T) {
	tests := []struct {
		name      string
		placement Placement
		alliance  Alliance
		want      Point
	}{
		{name: "blue left", placement: Placement{Position: PositionLeft}, alliance: AllianceBlue, want: Point{X: 40, Y: 25}},
		{name: "blue middle", placement: Placement{Position: PositionMiddle}, alliance: AllianceBlue, want: Point{X: 40, Y: 50}},
		{name: "blue right", placement: Placement{Position: PositionRight}, alliance: AllianceBlue, want: Point{X: 40, Y: 75}},
		{name: "red left mirrors low", placement: Placement{Position: PositionLeft}, alliance: AllianceRed, want: Point{X: 67, Y: 86}},
		{name: "red middle", placement: Placement{Position: PositionMiddle}, alliance: AllianceRed, want: Point{X: 67, Y: 62}},
		{name: "red right mirrors high", placement: Placement{Position: PositionRight}, alliance: AllianceRed, want: Point{X: 67, Y: 36}},
		{name: "unknown code defaults to middle", placement: Placement{Position: "Q"}, alliance: AllianceBlue, want: Point{X: 40, Y: 50}},
		{name: "custom wins over symbolic", placement: Placement{Position: PositionLeft, Custom: &Point{X: 12, Y: 34}}, alliance: AllianceRed, want: Point{X: 12, Y: 34}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.placement.Coordinates(tt.alliance))
		})
	}
}

func TestNormalize(t *testing.T) {
	l := &Layout{BlueTeams: []string{"254"}}
	l.Normalize()
	require.NotNil(t, l.Placements)
	assert.NoError(t, l.SetPosition("254", PositionLeft))
}
