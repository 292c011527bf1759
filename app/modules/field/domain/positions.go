// Package fielddomain models the match-planning field view: up to three
// teams per alliance placed at symbolic or free-form starting positions.
package fielddomain

import "errors"

// MaxTeamsPerAlliance caps how many robots one alliance fields.
const MaxTeamsPerAlliance = 3

// Alliance is the side of the field a team plays on.
type Alliance string

const (
	AllianceBlue Alliance = "blue"
	AllianceRed  Alliance = "red"
)

// Symbolic starting positions.
const (
	PositionLeft   = "L"
	PositionMiddle = "M"
	PositionRight  = "R"
)

var (
	// ErrEmptyTeam is returned when placing an empty team number.
	ErrEmptyTeam = errors.New("team number is required")

	// ErrInvalidAlliance is returned for an unknown alliance color.
	ErrInvalidAlliance = errors.New("invalid alliance")

	// ErrTeamNotOnField is returned when positioning a team that is on
	// neither alliance.
	ErrTeamNotOnField = errors.New("team is not on the field")
)

// Point is a position in field percentages, x left to right and y top to
// bottom, both in [0, 100].
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement is one team's starting position. Custom, when set, overrides the
// symbolic position; choosing a symbolic position clears it.
type Placement struct {
	Position string `json:"position"`
	Custom   *Point `json:"custom,omitempty"`
}

// Alliance-relative anchor points for the symbolic positions. The red side
// mirrors blue across the field center.
var (
	bluePositions = map[string]Point{
		PositionLeft:   {X: 40, Y: 25},
		PositionMiddle: {X: 40, Y: 50},
		PositionRight:  {X: 40, Y: 75},
	}
	redPositions = map[string]Point{
		PositionLeft:   {X: 67, Y: 86},
		PositionMiddle: {X: 67, Y: 62},
		PositionRight:  {X: 67, Y: 36},
	}
)

// Coordinates resolves the placement to field percentages. Unknown symbolic
// codes resolve to the alliance's middle anchor.
func (p Placement) Coordinates(alliance Alliance) Point {
	if p.Custom != nil {
		return *p.Custom
	}

	anchors := bluePositions
	if alliance == AllianceRed {
		anchors = redPositions
	}
	if point, ok := anchors[p.Position]; ok {
		return point
	}
	return anchors[PositionMiddle]
}

// Layout is the field state for one event: the teams on each side and their
// placements.
type Layout struct {
	BlueTeams  []string             `json:"blueTeams"`
	RedTeams   []string             `json:"redTeams"`
	Placements map[string]Placement `json:"placements"`
}

// NewLayout returns an empty field layout.
func NewLayout() *Layout {
	return &Layout{Placements: make(map[string]Placement)}
}

// Normalize repairs a layout loaded from storage.
func (l *Layout) Normalize() {
	if l.Placements == nil {
		l.Placements = make(map[string]Placement)
	}
}

// AddTeam puts a team onto one side of the field. A team already on the
// other side is moved; a full side drops its oldest team to make room.
// Re-adding a team to its current side is a no-op.
func (l *Layout) AddTeam(teamNumber string, alliance Alliance) error {
	if teamNumber == "" {
		return ErrEmptyTeam
	}

	var side *[]string
	switch alliance {
	case AllianceBlue:
		side = &l.BlueTeams
	case AllianceRed:
		side = &l.RedTeams
	default:
		return ErrInvalidAlliance
	}

	for _, t := range *side {
		if t == teamNumber {
			return nil
		}
	}

	l.RemoveTeam(teamNumber)

	if len(*side) >= MaxTeamsPerAlliance {
		dropped := (*side)[0]
		*side = (*side)[1:]
		delete(l.Placements, dropped)
	}
	*side = append(*side, teamNumber)
	l.Placements[teamNumber] = Placement{Position: PositionMiddle}
	return nil
}

// RemoveTeam takes a team off the field entirely.
func (l *Layout) RemoveTeam(teamNumber string) {
	l.BlueTeams = remove(l.BlueTeams, teamNumber)
	l.RedTeams = remove(l.RedTeams, teamNumber)
	delete(l.Placements, teamNumber)
}

func remove(teams []string, teamNumber string) []string {
	for i, t := range teams {
		if t == teamNumber {
			return append(teams[:i:i], teams[i+1:]...)
		}
	}
	return teams
}

// AllianceOf reports which side a team is on.
func (l *Layout) AllianceOf(teamNumber string) (Alliance, bool) {
	for _, t := range l.BlueTeams {
		if t == teamNumber {
			return AllianceBlue, true
		}
	}
	for _, t := range l.RedTeams {
		if t == teamNumber {
			return AllianceRed, true
		}
	}
	return "", false
}

// SetPosition moves a team to a symbolic starting position, clearing any
// custom placement.
func (l *Layout) SetPosition(teamNumber, position string) error {
	if _, ok := l.AllianceOf(teamNumber); !ok {
		return ErrTeamNotOnField
	}
	l.Placements[teamNumber] = Placement{Position: position}
	return nil
}

// SetCustomPosition drops a team at free-form field coordinates. Values are
// clamped to the field bounds.
func (l *Layout) SetCustomPosition(teamNumber string, x, y float64) error {
	if _, ok := l.AllianceOf(teamNumber); !ok {
		return ErrTeamNotOnField
	}
	placement := l.Placements[teamNumber]
	placement.Custom = &Point{X: clamp(x), Y: clamp(y)}
	l.Placements[teamNumber] = placement
	return nil
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
