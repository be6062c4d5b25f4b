package report

import (
	"fmt"
	"io"

	"github.com/RushAlz/circrna/sweep"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// WriteHTML renders an interactive page with one stacked bar chart per metric and
// strand mode.
func WriteHTML(w io.Writer, bins []sweep.HistogramBin, id string) error {
	page := components.NewPage()
	page.PageTitle = id + " shift plots"
	for _, m := range sweep.Metrics {
		g := newGrid(bins, m)
		for _, s := range g.modes {
			page.AddCharts(barChart(g, m, s, id))
		}
	}
	return page.Render(w)
}

func barChart(g grid, m sweep.Metric, strandSensitive bool, id string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: m.Title(), Subtitle: fmt.Sprintf("%s, %s", id, panelTitle(strandSensitive))}),
		charts.WithXAxisOpts(opts.XAxis{Name: "max_shift"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	bar.SetXAxis(g.labels())
	for _, v := range g.values {
		series := g.series(strandSensitive, v)
		data := make([]opts.BarData, len(series))
		for i := range series {
			data[i] = opts.BarData{Value: int(series[i])}
		}
		bar.AddSeries(fmt.Sprintf("%d", v), data, charts.WithBarChartOpts(opts.BarChart{Stack: string(m)}))
	}
	return bar
}
