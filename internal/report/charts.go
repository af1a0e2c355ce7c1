package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/MJE43/eda-game-tester/internal/batch"
)

// WriteHTML renders the results as a self-contained HTML page with one bar
// chart for average points and one for win rates.
func WriteHTML(w io.Writer, names [4]string, instances uint32, res batch.Results) error {
	ok := okGames(instances, res)

	axis := make([]string, 0, len(names))
	avgData := make([]opts.BarData, 0, len(names))
	wrData := make([]opts.BarData, 0, len(names))
	for i, pr := range res.Players {
		axis = append(axis, names[i])
		if ok == 0 {
			avgData = append(avgData, opts.BarData{Value: 0.0})
			wrData = append(wrData, opts.BarData{Value: 0.0})
			continue
		}
		avgData = append(avgData, opts.BarData{Value: float64(pr.TotalPoints) / float64(ok)})
		wrData = append(wrData, opts.BarData{Value: float64(pr.TotalWins) * 100 / float64(ok)})
	}

	subtitle := fmt.Sprintf("%d games, %d crashed", instances, len(res.FailedSeeds))

	avgBar := charts.NewBar()
	avgBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "EDA Game Tester",
			Width:     "700px",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Average points", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	avgBar.SetXAxis(axis).AddSeries("points", avgData,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)

	wrBar := charts.NewBar()
	wrBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "700px",
			Height: "400px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Win rate (%)", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	wrBar.SetXAxis(axis).AddSeries("win rate", wrData,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)

	page := components.NewPage()
	page.AddCharts(avgBar, wrBar)
	return page.Render(w)
}
