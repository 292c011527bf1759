// Package events defines the topics and payloads the service publishes for
// companion tools (pit displays, strategy dashboards) that subscribe over NATS.
package events

import "time"

const (
	// TeamUpdated is published after a scouting submission is persisted.
	TeamUpdated = "scout.team.updated"

	// AllianceFinalized is published when an alliance selection table is
	// finalized and saved.
	AllianceFinalized = "scout.alliance.finalized"

	// StatsSnapshotRefreshed is published when an event's ranking snapshot
	// is rebuilt from the upstream source.
	StatsSnapshotRefreshed = "scout.stats.refreshed"
)

// TeamUpdatedPayload announces a created or re-submitted team record.
type TeamUpdatedPayload struct {
	TeamNumber string    `json:"team_number"`
	Name       string    `json:"name,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AllianceSlotPayload mirrors one persisted alliance row. Nil picks mean the
// slot is empty.
type AllianceSlotPayload struct {
	AllianceNumber int     `json:"allianceNumber"`
	Captain        *string `json:"captain"`
	FirstPick      *string `json:"firstPick"`
	SecondPick     *string `json:"secondPick"`
}

// AllianceFinalizedPayload announces a finalized selection table.
type AllianceFinalizedPayload struct {
	EventKey  string                `json:"event_key"`
	Alliances []AllianceSlotPayload `json:"alliances"`
	Timestamp time.Time             `json:"timestamp"`
}

// StatsSnapshotRefreshedPayload announces a rebuilt ranking snapshot.
type StatsSnapshotRefreshedPayload struct {
	EventKey    string    `json:"event_key"`
	TeamCount   int       `json:"team_count"`
	RefreshedAt time.Time `json:"refreshed_at"`
}
