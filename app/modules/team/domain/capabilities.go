// Package teamdomain holds the scouted-data value types and the capability
// model that derives summary flags from raw submissions.
package teamdomain

import "encoding/json"

// Known option codes from the scouting form. Raw fields keep their string
// form; the model only ever compares against these.
const (
	CoralLocationTrough = "troughL1"
	CoralLocationL2     = "L2Branches"
	CoralLocationL3     = "L3Branches"
	CoralLocationL4     = "L4Branches"

	AlgaeDoesNotHandle = "doesNotHandle"

	EndgameClimbShallow = "climbsCageShallow"
	EndgameClimbDeep    = "climbsCageDeep"

	DrivingSpeedFast     = "fast"
	DrivingSpeedVeryFast = "veryFast"
)

// StringList is a []string that also accepts a bare JSON string, normalizing
// the original documents' scalar-or-array fields once at the boundary.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err == nil {
		*l = values
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*l = nil
		return nil
	}
	*l = StringList{single}
	return nil
}

// Contains reports whether the list holds the given code.
func (l StringList) Contains(code string) bool {
	for _, v := range l {
		if v == code {
			return true
		}
	}
	return false
}

// RawScoutingData carries one submission's raw field values.
type RawScoutingData struct {
	StartingPosition     string     `json:"startingPosition"`
	LeavesStartingLine   string     `json:"leavesStartingLine"`
	CoralScoredAutoL1    string     `json:"coralScoredAutoL1"`
	CoralScoredAutoReef  string     `json:"coralScoredAutoReef"`
	AlgaeScoredAutoReef  string     `json:"algaeScoredAutoReef"`
	PrimaryAutoActivity  string     `json:"primaryAutoActivity"`
	CoralScoringLocation StringList `json:"coralScoringLocation"`
	AlgaeHandling        StringList `json:"algaeHandling"`
	DefensePlayed        string     `json:"defensePlayed"`
	DrivingSpeed         string     `json:"drivingSpeed"`
	EndgameAction        string     `json:"endgameAction"`
}

// Capabilities are the derived summary flags. Always computed from the raw
// fields at write time, never edited independently.
type Capabilities struct {
	AutoScoring   bool `json:"autoScoring"`
	HighScoring   bool `json:"highScoring"`
	AlgaeHandling bool `json:"algaeHandling"`
	Climbing      bool `json:"climbing"`
	FastDriving   bool `json:"fastDriving"`
}

// DeriveCapabilities computes the capability flags for a submission. Pure:
// same input always yields the same output, and absent fields resolve to
// false through the comparisons below.
func DeriveCapabilities(raw RawScoutingData) Capabilities {
	return Capabilities{
		AutoScoring: (raw.CoralScoredAutoL1 != "" && raw.CoralScoredAutoL1 != "0") ||
			(raw.CoralScoredAutoReef != "" && raw.CoralScoredAutoReef != "0"),
		HighScoring: raw.CoralScoringLocation.Contains(CoralLocationL3) ||
			raw.CoralScoringLocation.Contains(CoralLocationL4),
		AlgaeHandling: len(raw.AlgaeHandling) > 0 &&
			(len(raw.AlgaeHandling) > 1 || !raw.AlgaeHandling.Contains(AlgaeDoesNotHandle)),
		Climbing: raw.EndgameAction == EndgameClimbShallow ||
			raw.EndgameAction == EndgameClimbDeep,
		FastDriving: raw.DrivingSpeed == DrivingSpeedFast ||
			raw.DrivingSpeed == DrivingSpeedVeryFast,
	}
}
