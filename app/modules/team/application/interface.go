package teamservice

import (
	"context"
)

// Service defines the contract for team operations.
type Service interface {
	// UpsertTeam creates or updates a team, rederiving its capabilities.
	UpsertTeam(ctx context.Context, input TeamInput) (*TeamView, error)

	// GetTeam retrieves a single team by its number.
	GetTeam(ctx context.Context, teamNumber string) (*TeamView, error)

	// ListTeams retrieves all teams ordered by team number.
	ListTeams(ctx context.Context) ([]TeamView, error)

	// ExportTeams renders all teams into an xlsx workbook.
	ExportTeams(ctx context.Context) ([]byte, error)
}
