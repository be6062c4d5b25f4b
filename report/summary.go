package report

import (
	"fmt"
	"strings"

	"github.com/RushAlz/circrna/sweep"
	"github.com/guptarohit/asciigraph"
)

// Summary plots the number of clusters at each tolerance, one line per strand
// mode, for terminal output. Returns an empty string when bins is empty.
func Summary(bins []sweep.HistogramBin) string {
	g := newGrid(bins, sweep.NTools)
	if len(g.tolerances) == 0 {
		return ""
	}
	counts := sweep.ClusterCounts(bins)

	data := make([][]float64, len(g.modes))
	colors := make([]asciigraph.AnsiColor, len(g.modes))
	legend := new(strings.Builder)
	for i, s := range g.modes {
		colors[i] = asciigraph.Blue
		if s {
			colors[i] = asciigraph.Red
		}
		data[i] = make([]float64, len(g.tolerances))
		for j, t := range g.tolerances {
			data[i][j] = float64(counts[sweep.Run{Tolerance: t, StrandSensitive: s}])
		}
		fmt.Fprintf(legend, "  %s: %v\n", panelTitle(s), data[i])
	}

	plot := asciigraph.PlotMany(data,
		asciigraph.Height(10),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("clusters at max_shift %v (red: consider strand, blue: ignore strand)", g.tolerances)))
	return plot + "\n" + legend.String()
}
