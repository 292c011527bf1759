package statsservice

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	statsdomain "github.com/Panther-Scouting/reef-scout/app/modules/stats/domain"
)

// chartTopN caps how many teams appear on the contribution chart.
const chartTopN = 15

// RenderChart renders the event's contribution ratings as a PNG bar chart,
// highest OPR first.
func (s *StatsService) RenderChart(ctx context.Context, eventKey string) ([]byte, error) {
	view, err := s.GetRankings(ctx, eventKey)
	if err != nil {
		return nil, err
	}
	if len(view.Standings) == 0 {
		return renderNoDataPlaceholder(eventKey)
	}

	// Standings arrive rank-sorted; resort by OPR for the chart.
	standings := make([]statsdomain.Standing, len(view.Standings))
	copy(standings, view.Standings)
	sort.Slice(standings, func(i, j int) bool {
		return standings[i].OPR > standings[j].OPR
	})
	if len(standings) > chartTopN {
		standings = standings[:chartTopN]
	}

	bars := make([]chart.Value, 0, len(standings))
	for _, st := range standings {
		// go-chart rejects zero-range data; floor tiny OPRs.
		value := st.OPR
		if value < 0.1 {
			value = 0.1
		}
		bars = append(bars, chart.Value{
			Label: st.TeamNumber,
			Value: value,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2d6cdf"),
				StrokeColor: drawing.ColorFromHex("2d6cdf"),
			},
		})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("OPR - %s", eventKey),
		Width:    900,
		Height:   450,
		BarWidth: 40,
		Bars:     bars,
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(eventKey string) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)
	msg := fmt.Sprintf("No ranking data for %s", eventKey)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style:   chart.Hidden(),
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
