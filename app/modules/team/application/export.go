package teamservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"Team Number", "Name",
	"Auto Scoring", "High Scoring", "Algae Handling", "Climbing", "Fast Driving",
	"Starting Position", "Leaves Starting Line",
	"Coral Auto L1", "Coral Auto Reef", "Algae Auto Reef", "Primary Auto Activity",
	"Coral Scoring Location", "Algae Handling Modes", "Defense Played",
	"Driving Speed", "Endgame Action", "Updated At",
}

// ExportTeams renders all stored teams into an xlsx workbook, one row per
// team with the derived flags ahead of the raw form answers.
func (s *TeamService) ExportTeams(ctx context.Context) ([]byte, error) {
	teams, err := s.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Teams"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, team := range teams {
		row := []any{
			team.TeamNumber, team.Name,
			team.Capabilities.AutoScoring, team.Capabilities.HighScoring,
			team.Capabilities.AlgaeHandling, team.Capabilities.Climbing,
			team.Capabilities.FastDriving,
			team.Raw.StartingPosition, team.Raw.LeavesStartingLine,
			team.Raw.CoralScoredAutoL1, team.Raw.CoralScoredAutoReef,
			team.Raw.AlgaeScoredAutoReef, team.Raw.PrimaryAutoActivity,
			strings.Join(team.Raw.CoralScoringLocation, ", "),
			strings.Join(team.Raw.AlgaeHandling, ", "),
			team.Raw.DefensePlayed, team.Raw.DrivingSpeed, team.Raw.EndgameAction,
			team.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write team row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
