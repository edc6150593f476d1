package tournamentservice

import (
	"bytes"

	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// chartTopN bounds how many entries the closure chart shows.
const chartTopN = 10

// renderStandingsChart produces a PNG bar chart of the final standings,
// best times in seconds, fastest first.
func renderStandingsChart(courseName string, entries []tournamenttypes.LeaderboardEntry) ([]byte, error) {
	if len(entries) == 0 {
		return renderNoScoresPlaceholder(courseName)
	}

	top := entries
	if len(top) > chartTopN {
		top = top[:chartTopN]
	}

	bars := make([]chart.Value, len(top))
	for i, entry := range top {
		bars[i] = chart.Value{
			Label: string(entry.UserID),
			Value: entry.BestTime.Duration().Seconds(),
		}
	}

	graph := chart.BarChart{
		Title:    courseName,
		Width:    800,
		Height:   400,
		BarWidth: 48,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name: "Time (s)",
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoScoresPlaceholder(courseName string) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No scores submitted"
	)

	graph := chart.Chart{
		Title:  courseName,
		Width:  width,
		Height: height,
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
