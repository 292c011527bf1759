package teamintegrationtests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	teamdomain "github.com/Panther-Scouting/reef-scout/app/modules/team/domain"
	teamdb "github.com/Panther-Scouting/reef-scout/app/modules/team/infrastructure/repositories"
	"github.com/Panther-Scouting/reef-scout/integration_tests/testutils"
)

func TestTeamRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	testDB, err := testutils.SetupTestDB(ctx)
	require.NoError(t, err)
	defer testDB.Teardown(ctx)

	repo := teamdb.NewRepository(testDB.DB)

	raw := teamdomain.RawScoutingData{
		CoralScoredAutoReef:  "2",
		CoralScoringLocation: teamdomain.StringList{"L3Branches", "L4Branches"},
		AlgaeHandling:        teamdomain.StringList{"collectsFromReef"},
		DrivingSpeed:         "fast",
		EndgameAction:        "climbsCageDeep",
	}

	team := &teamdb.Team{
		TeamNumber:   "714",
		Name:         "Panthera",
		Raw:          raw,
		Capabilities: teamdomain.DeriveCapabilities(raw),
	}
	require.NoError(t, repo.Upsert(ctx, nil, team))

	t.Run("round trip preserves raw data and flags", func(t *testing.T) {
		got, err := repo.GetByNumber(ctx, nil, "714")
		require.NoError(t, err)

		assert.Equal(t, "Panthera", got.Name)
		assert.Equal(t, raw, got.Raw)
		assert.True(t, got.Capabilities.AutoScoring)
		assert.True(t, got.Capabilities.HighScoring)
		assert.True(t, got.Capabilities.Climbing)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("upsert replaces the existing row", func(t *testing.T) {
		updated := &teamdb.Team{
			TeamNumber: "714",
			Name:       "Panthera Rev B",
			Raw:        teamdomain.RawScoutingData{EndgameAction: "parksInBargeZone"},
		}
		updated.Capabilities = teamdomain.DeriveCapabilities(updated.Raw)
		require.NoError(t, repo.Upsert(ctx, nil, updated))

		got, err := repo.GetByNumber(ctx, nil, "714")
		require.NoError(t, err)
		assert.Equal(t, "Panthera Rev B", got.Name)
		assert.False(t, got.Capabilities.Climbing)

		teams, err := repo.List(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, teams, 1)
	})

	t.Run("unknown team yields ErrNotFound", func(t *testing.T) {
		_, err := repo.GetByNumber(ctx, nil, "9999")
		assert.True(t, errors.Is(err, teamdb.ErrNotFound))
	})

	t.Run("list returns every team ordered by number", func(t *testing.T) {
		generated := testutils.NewTestDataGenerator(42).GenerateTeams(10)
		for i := range generated {
			require.NoError(t, repo.Upsert(ctx, nil, &generated[i]))
		}

		teams, err := repo.List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, teams, len(generated)+1)
		for i := 1; i < len(teams); i++ {
			assert.LessOrEqual(t, teams[i-1].TeamNumber, teams[i].TeamNumber)
		}
	})
}
