// Package alliancedomain models the alliance selection board: eight
// alliances of three slots each, with every team holding at most one slot.
package alliancedomain

import "errors"

// NumAlliances is the number of alliances on a selection board.
const NumAlliances = 8

// Role identifies one of the three slots in an alliance.
type Role string

const (
	RoleCaptain    Role = "captain"
	RoleFirstPick  Role = "firstPick"
	RoleSecondPick Role = "secondPick"
)

var (
	// ErrFinalized is returned when mutating a finalized board.
	ErrFinalized = errors.New("selection is finalized")

	// ErrInvalidAlliance is returned for an alliance number outside 1..8.
	ErrInvalidAlliance = errors.New("invalid alliance number")

	// ErrInvalidRole is returned for an unknown slot role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrEmptyTeam is returned when assigning an empty team number.
	ErrEmptyTeam = errors.New("team number is required")
)

// Alliance holds the three slots of one alliance. An empty string marks a
// vacant slot.
type Alliance struct {
	Number     int    `json:"allianceNumber"`
	Captain    string `json:"captain"`
	FirstPick  string `json:"firstPick"`
	SecondPick string `json:"secondPick"`
}

// Board is the full selection state for one event.
type Board struct {
	Alliances []Alliance `json:"alliances"`
	Finalized bool       `json:"finalized"`
}

// NewBoard returns an empty board with alliances numbered 1 through 8.
func NewBoard() *Board {
	alliances := make([]Alliance, NumAlliances)
	for i := range alliances {
		alliances[i].Number = i + 1
	}
	return &Board{Alliances: alliances}
}

// Normalize repairs a board loaded from storage: missing alliances are
// filled in and numbering is restored, so older documents stay readable.
func (b *Board) Normalize() {
	if len(b.Alliances) < NumAlliances {
		padded := make([]Alliance, NumAlliances)
		copy(padded, b.Alliances)
		b.Alliances = padded
	}
	for i := range b.Alliances {
		b.Alliances[i].Number = i + 1
	}
}

func (b *Board) slot(allianceNumber int, role Role) (*string, error) {
	if allianceNumber < 1 || allianceNumber > len(b.Alliances) {
		return nil, ErrInvalidAlliance
	}
	a := &b.Alliances[allianceNumber-1]
	switch role {
	case RoleCaptain:
		return &a.Captain, nil
	case RoleFirstPick:
		return &a.FirstPick, nil
	case RoleSecondPick:
		return &a.SecondPick, nil
	default:
		return nil, ErrInvalidRole
	}
}

// Assign places a team into a slot. If the team already holds another slot
// it is vacated first, so the placement is a move rather than a copy. The
// slot's previous occupant, if any, is simply displaced.
func (b *Board) Assign(allianceNumber int, role Role, teamNumber string) error {
	if b.Finalized {
		return ErrFinalized
	}
	if teamNumber == "" {
		return ErrEmptyTeam
	}
	target, err := b.slot(allianceNumber, role)
	if err != nil {
		return err
	}

	b.vacate(teamNumber)
	*target = teamNumber
	return nil
}

// Unassign clears a slot. Clearing an already-vacant slot is a no-op.
func (b *Board) Unassign(allianceNumber int, role Role) error {
	if b.Finalized {
		return ErrFinalized
	}
	target, err := b.slot(allianceNumber, role)
	if err != nil {
		return err
	}
	*target = ""
	return nil
}

// vacate removes the team from every slot it currently holds.
func (b *Board) vacate(teamNumber string) {
	for i := range b.Alliances {
		a := &b.Alliances[i]
		if a.Captain == teamNumber {
			a.Captain = ""
		}
		if a.FirstPick == teamNumber {
			a.FirstPick = ""
		}
		if a.SecondPick == teamNumber {
			a.SecondPick = ""
		}
	}
}

// IsAssigned reports the slot a team holds, if any.
func (b *Board) IsAssigned(teamNumber string) (int, Role, bool) {
	if teamNumber == "" {
		return 0, "", false
	}
	for i := range b.Alliances {
		a := b.Alliances[i]
		switch teamNumber {
		case a.Captain:
			return a.Number, RoleCaptain, true
		case a.FirstPick:
			return a.Number, RoleFirstPick, true
		case a.SecondPick:
			return a.Number, RoleSecondPick, true
		}
	}
	return 0, "", false
}

// AssignedTeams returns every team on the board in alliance order.
func (b *Board) AssignedTeams() []string {
	var teams []string
	for _, a := range b.Alliances {
		for _, team := range []string{a.Captain, a.FirstPick, a.SecondPick} {
			if team != "" {
				teams = append(teams, team)
			}
		}
	}
	return teams
}

// Finalize locks the board. Finalizing an already-final board is a no-op.
func (b *Board) Finalize() {
	b.Finalized = true
}

// Unfinalize reopens a locked board for editing.
func (b *Board) Unfinalize() {
	b.Finalized = false
}
