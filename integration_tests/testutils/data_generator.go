package testutils

import (
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	teamdomain "github.com/Panther-Scouting/reef-scout/app/modules/team/domain"
	teamdb "github.com/Panther-Scouting/reef-scout/app/modules/team/infrastructure/repositories"
)

// TestDataGenerator produces randomized scouting records for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator with an optional fixed seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// GenerateTeams creates count teams with distinct team numbers and randomized
// form answers. Capabilities are derived the same way the service derives them.
func (g *TestDataGenerator) GenerateTeams(count int) []teamdb.Team {
	speeds := []string{"slow", "moderate", "fast", "veryFast"}
	endgames := []string{"doesNothing", "parksInBargeZone", "climbsCageShallow", "climbsCageDeep"}
	locations := []string{
		teamdomain.CoralLocationTrough,
		teamdomain.CoralLocationL2,
		teamdomain.CoralLocationL3,
		teamdomain.CoralLocationL4,
	}
	algae := []string{teamdomain.AlgaeDoesNotHandle, "collectsFromReef", "scoresInProcessor", "scoresInNet"}

	teams := make([]teamdb.Team, count)
	for i := range teams {
		raw := teamdomain.RawScoutingData{
			StartingPosition:     g.faker.RandomString([]string{"L", "M", "R"}),
			LeavesStartingLine:   strconv.FormatBool(g.faker.Bool()),
			CoralScoredAutoL1:    strconv.Itoa(g.faker.Number(0, 4)),
			CoralScoredAutoReef:  strconv.Itoa(g.faker.Number(0, 4)),
			AlgaeScoredAutoReef:  strconv.Itoa(g.faker.Number(0, 2)),
			CoralScoringLocation: teamdomain.StringList{g.faker.RandomString(locations)},
			AlgaeHandling:        teamdomain.StringList{g.faker.RandomString(algae)},
			DefensePlayed:        g.faker.RandomString([]string{"never", "sometimes", "often"}),
			DrivingSpeed:         g.faker.RandomString(speeds),
			EndgameAction:        g.faker.RandomString(endgames),
		}
		teams[i] = teamdb.Team{
			TeamNumber:   strconv.Itoa(1000 + i),
			Name:         g.faker.Company(),
			Raw:          raw,
			Capabilities: teamdomain.DeriveCapabilities(raw),
		}
	}
	return teams
}
