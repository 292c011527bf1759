// Package statsdomain normalizes event ranking data from The Blue Alliance
// into one flat standing per team. Ranking columns vary per season and per
// event, so the column legend is discovered by name before any values are
// read.
package statsdomain

import (
	"sort"
	"strings"

	"github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/tba"
)

// extraStatsBase offsets indexes that point into extra_stats instead of
// sort_orders. Index i of extra_stats is stored as extraStatsBase - i, which
// never collides with a real sort_orders index.
const extraStatsBase = -100

// Default column positions when no legend name matches.
const (
	defaultAvgAutoIndex  = 1
	defaultAvgScoreIndex = 2
)

// Standing is one team's normalized row.
type Standing struct {
	TeamNumber string  `json:"teamNumber"`
	Name       string  `json:"name"`
	Rank       int     `json:"rank"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Ties       int     `json:"ties"`
	AvgScore   float64 `json:"avgScore"`
	AvgAuto    float64 `json:"avgAuto"`
	OPR        float64 `json:"opr"`
	Selected   bool    `json:"selected"`
}

// Legend holds the discovered column positions for the two averages.
type Legend struct {
	AvgAutoIndex  int
	AvgScoreIndex int
}

// DiscoverLegend finds the average-auto and average-score columns by name.
// sort_order_info is searched first, then extra_stats_info; unmatched columns
// fall back to the usual positions. Within each list the last matching column
// wins, so a leading "Ranking Score" column does not shadow the real average.
func DiscoverLegend(sortOrderInfo, extraStatsInfo []tba.ColumnInfo) Legend {
	avgAuto, avgScore := -1, -1

	for i, info := range sortOrderInfo {
		name := strings.ToLower(info.Name)
		if strings.Contains(name, "match") || strings.Contains(name, "score") {
			avgScore = i
		}
		if strings.Contains(name, "auto") {
			avgAuto = i
		}
	}

	scoreMissing, autoMissing := avgScore == -1, avgAuto == -1
	for i, info := range extraStatsInfo {
		name := strings.ToLower(info.Name)
		if scoreMissing && (strings.Contains(name, "match") || strings.Contains(name, "score")) {
			avgScore = extraStatsBase - i
		}
		if autoMissing && strings.Contains(name, "auto") {
			avgAuto = extraStatsBase - i
		}
	}

	if avgAuto == -1 {
		avgAuto = defaultAvgAutoIndex
	}
	if avgScore == -1 {
		avgScore = defaultAvgScoreIndex
	}
	return Legend{AvgAutoIndex: avgAuto, AvgScoreIndex: avgScore}
}

// value reads one legend column from a ranking row. Out-of-range columns
// yield zero rather than an error; partial rows happen early in an event.
func (l Legend) value(row tba.RankingRow, index int) float64 {
	if index <= extraStatsBase {
		pos := extraStatsBase - index
		if pos < len(row.ExtraStats) {
			return row.ExtraStats[pos]
		}
		return 0
	}
	if index >= 0 && index < len(row.SortOrders) {
		return row.SortOrders[index]
	}
	return 0
}

// TeamNumberFromKey strips the "frc" prefix from a TBA team key.
func TeamNumberFromKey(key string) string {
	if len(key) > 3 && strings.HasPrefix(key, "frc") {
		return key[3:]
	}
	return key
}

// Normalize merges rankings, contribution stats, and the team list into flat
// standings sorted by rank. Teams missing from the OPR table get zero; teams
// missing from the roster get a name built from their number.
func Normalize(rankings *tba.RankingsResponse, oprs *tba.OPRsResponse, teams []tba.EventTeam) []Standing {
	if rankings == nil {
		return nil
	}
	legend := DiscoverLegend(rankings.SortOrderInfo, rankings.ExtraStatsInfo)

	names := make(map[string]string, len(teams))
	for _, team := range teams {
		names[team.Key] = team.Nickname
	}

	standings := make([]Standing, 0, len(rankings.Rankings))
	for _, row := range rankings.Rankings {
		var opr float64
		if oprs != nil {
			opr = oprs.OPRs[row.TeamKey]
		}
		number := TeamNumberFromKey(row.TeamKey)
		name := names[row.TeamKey]
		if name == "" {
			name = "Team " + number
		}
		standing := Standing{
			TeamNumber: number,
			Name:       name,
			Rank:       row.Rank,
			AvgScore:   legend.value(row, legend.AvgScoreIndex),
			AvgAuto:    legend.value(row, legend.AvgAutoIndex),
			OPR:        opr,
		}
		if row.Record != nil {
			standing.Wins = row.Record.Wins
			standing.Losses = row.Record.Losses
			standing.Ties = row.Record.Ties
		}
		standings = append(standings, standing)
	}

	sort.Slice(standings, func(i, j int) bool {
		return standings[i].Rank < standings[j].Rank
	})
	return standings
}
