package fieldservice

import (
	"context"

	fielddomain "github.com/Panther-Scouting/reef-scout/app/modules/field/domain"
)

// Service defines the contract for field layout operations.
type Service interface {
	// GetLayout retrieves the layout for an event. An event with no saved
	// layout yields an empty one.
	GetLayout(ctx context.Context, eventKey string) (*LayoutView, error)

	// AddTeam drops a team onto one side of the field.
	AddTeam(ctx context.Context, eventKey, teamNumber string, alliance fielddomain.Alliance) (*LayoutView, error)

	// RemoveTeam takes a team off the field.
	RemoveTeam(ctx context.Context, eventKey, teamNumber string) (*LayoutView, error)

	// SetPosition moves a team to a symbolic starting position.
	SetPosition(ctx context.Context, eventKey, teamNumber, position string) (*LayoutView, error)

	// SetCustomPosition drops a team at free-form field coordinates.
	SetCustomPosition(ctx context.Context, eventKey, teamNumber string, x, y float64) (*LayoutView, error)
}
