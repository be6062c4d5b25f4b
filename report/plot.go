package report

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/RushAlz/circrna/sweep"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// maxNominalValues is the number of distinct values drawn with categorical
// colours. Above this a continuous colour map is used.
const maxNominalValues = 10

// PlotMetric draws the stacked bar chart for metric m, one panel per strand mode,
// and returns it as PNG.
func PlotMetric(bins []sweep.HistogramBin, m sweep.Metric) ([]byte, error) {
	g := newGrid(bins, m)
	if len(g.modes) == 0 {
		return nil, errors.Errorf("no rows for metric %s", m)
	}

	colorOf := valueColors(g.values)

	plots := [][]*plot.Plot{make([]*plot.Plot, len(g.modes))}
	for j, s := range g.modes {
		p := plot.New()
		p.Title.Text = panelTitle(s)
		p.X.Label.Text = "max_shift"
		p.Y.Label.Text = "count"
		p.Legend.Top = true

		var below *plotter.BarChart
		for _, v := range g.values {
			bars, err := plotter.NewBarChart(plotter.Values(g.series(s, v)), vg.Points(14))
			if err != nil {
				return nil, errors.Wrapf(err, "bar chart for %s=%d", m, v)
			}
			bars.LineStyle.Width = vg.Length(0)
			bars.Color = colorOf(v)
			if below != nil {
				bars.StackOn(below)
			}
			below = bars
			p.Add(bars)
			if j == len(g.modes)-1 {
				p.Legend.Add(fmt.Sprintf("%d", v), bars)
			}
		}
		p.NominalX(g.labels()...)
		plots[0][j] = p
	}
	plots[0][0].Title.Text = m.Title() + "\n" + plots[0][0].Title.Text

	img := vgimg.New(vg.Length(len(g.modes))*12*vg.Centimeter, 12*vg.Centimeter)
	dc := draw.New(img)
	t := draw.Tiles{
		Rows:      1,
		Cols:      len(g.modes),
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, t, dc)
	for j := range plots[0] {
		plots[0][j].Draw(canvases[0][j])
	}

	buf := new(bytes.Buffer)
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "encoding png")
	}
	return buf.Bytes(), nil
}

func valueColors(values []int) func(int) color.Color {
	if len(values) <= maxNominalValues {
		idx := make(map[int]int, len(values))
		for i, v := range values {
			idx[v] = i
		}
		return func(v int) color.Color { return plotutil.Color(idx[v]) }
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(float64(values[0]))
	cm.SetMax(float64(values[len(values)-1]))
	return func(v int) color.Color {
		c, err := cm.At(float64(v))
		if err != nil {
			return color.Black
		}
		return c
	}
}
