package allianceservice

import (
	"context"

	alliancedomain "github.com/Panther-Scouting/reef-scout/app/modules/alliance/domain"
)

// Service defines the contract for alliance selection operations.
type Service interface {
	// GetSelection retrieves the saved board for an event, or ErrNotFound
	// when nothing has been saved.
	GetSelection(ctx context.Context, eventKey string) (*SelectionView, error)

	// GetBoard retrieves the working board for an event. An event with no
	// saved selection yields a fresh empty board.
	GetBoard(ctx context.Context, eventKey string) (*SelectionView, error)

	// SaveSelection replaces the whole board for an event.
	SaveSelection(ctx context.Context, eventKey string, board alliancedomain.Board) (*SelectionView, error)

	// Assign places a team into a slot, vacating any slot it held before.
	Assign(ctx context.Context, eventKey string, allianceNumber int, role alliancedomain.Role, teamNumber string) (*SelectionView, error)

	// Unassign clears a slot.
	Unassign(ctx context.Context, eventKey string, allianceNumber int, role alliancedomain.Role) (*SelectionView, error)

	// Finalize locks the board and announces the final alliances.
	Finalize(ctx context.Context, eventKey string) (*SelectionView, error)

	// Unfinalize reopens a locked board.
	Unfinalize(ctx context.Context, eventKey string) (*SelectionView, error)
}
