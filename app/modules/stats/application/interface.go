package statsservice

import (
	"context"

	"github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/tba"
)

// Service defines the contract for event stats operations.
type Service interface {
	// GetRankings returns the stored standings for an event, fetching them
	// from the ranking source on first access.
	GetRankings(ctx context.Context, eventKey string) (*RankingsView, error)

	// RefreshRankings refetches the event's ranking data and replaces the
	// stored snapshot.
	RefreshRankings(ctx context.Context, eventKey string) (*RankingsView, error)

	// RenderChart renders the event's contribution ratings as a PNG chart.
	RenderChart(ctx context.Context, eventKey string) ([]byte, error)
}

// RankingSource is the slice of the TBA client the service consumes.
type RankingSource interface {
	Rankings(ctx context.Context, eventKey string) (*tba.RankingsResponse, error)
	OPRs(ctx context.Context, eventKey string) (*tba.OPRsResponse, error)
	Teams(ctx context.Context, eventKey string) ([]tba.EventTeam, error)
}
