package teamservice

import (
	"time"

	teamdomain "github.com/Panther-Scouting/reef-scout/app/modules/team/domain"
)

// TeamInput is a scouting submission for one team.
type TeamInput struct {
	TeamNumber string                     `json:"teamNumber"`
	Name       string                     `json:"name"`
	Raw        teamdomain.RawScoutingData `json:"raw"`
}

// TeamView is the API shape of a stored team.
type TeamView struct {
	TeamNumber   string                     `json:"teamNumber"`
	Name         string                     `json:"name"`
	Raw          teamdomain.RawScoutingData `json:"raw"`
	Capabilities teamdomain.Capabilities    `json:"capabilities"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}
