package outingservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
)

// RenderLeaderboardChart produces a PNG bar chart of the current standings,
// one bar per ranked player.
func (s *OutingService) RenderLeaderboardChart(ctx context.Context, outingID uuid.UUID, formatID string) ([]byte, error) {
	format, entries, err := s.buildEntries(ctx, outingID, formatID)
	if err != nil {
		return nil, fmt.Errorf("render_leaderboard_chart: %w", err)
	}
	return renderStandingsChart(format, entries)
}

func renderStandingsChart(format outingdomain.ScoringFormat, entries []outingdomain.LeaderboardEntry) ([]byte, error) {
	if len(entries) == 0 {
		return renderNoDataPlaceholder()
	}

	// Cap the chart at the top 20 so bar labels stay legible.
	if len(entries) > 20 {
		entries = entries[:20]
	}

	bars := make([]chart.Value, len(entries))
	for i, e := range entries {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%d. %s", e.Position, e.DisplayName),
			Value: float64(e.FormatScore),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2d6a4f"),
				StrokeColor: drawing.ColorFromHex("1b4332"),
				StrokeWidth: 1,
			},
		}
	}

	yAxisName := "Net Strokes"
	if format == outingdomain.FormatStableford {
		yAxisName = "Stableford Points"
	}

	graph := chart.BarChart{
		Width:    max(640, 60*len(bars)),
		Height:   400,
		BarWidth: 40,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
		},
		Canvas: chart.Style{
			FillColor: drawing.ColorWhite,
		},
		YAxis: chart.YAxis{
			Name: yAxisName,
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No scores posted yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
		},
		Canvas: chart.Style{
			FillColor: drawing.ColorWhite,
		},
		XAxis: chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{Style: chart.Style{Hidden: true}},
		// The renderer refuses a chart with no series, so feed it one it
		// cannot see.
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(drawing.ColorBlack)
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
