// Package report renders the sweep histogram table: as TSV, as stacked bar
// charts (PNG and HTML), as a MultiQC custom-content fragment and as a terminal
// summary.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/RushAlz/circrna/sweep"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/fileio"
)

// TableHeader is the first line written by WriteTable.
const TableHeader = "metric\tvalue\tcount\tmax_shift\tconsider_strand"

// WriteTable writes bins as tab-separated rows with a header line.
func WriteTable(w io.Writer, bins []sweep.HistogramBin) error {
	if _, err := fmt.Fprintln(w, TableHeader); err != nil {
		return err
	}
	for _, b := range bins {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%t\n", b.Metric, b.Value, b.Count, b.Tolerance, b.StrandSensitive); err != nil {
			return err
		}
	}
	return nil
}

// ReadTable reads a table written by WriteTable.
func ReadTable(filename string) ([]sweep.HistogramBin, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, errors.Wrapf(err, "could not open %s", filename)
	}
	file := fileio.EasyOpen(filename)
	defer file.Close()

	var ans []sweep.HistogramBin
	var curr sweep.HistogramBin
	var col []string
	var line string
	var done bool
	var err error
	var lineNum int
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		if line == TableHeader {
			continue
		}
		col = strings.Split(line, "\t")
		if len(col) != 5 {
			return nil, errors.Errorf("%s line %d: expected 5 columns, found %d", filename, lineNum, len(col))
		}
		curr.Metric = sweep.Metric(col[0])
		if curr.Metric != sweep.NSamples && curr.Metric != sweep.NTools {
			return nil, errors.Errorf("%s line %d: unknown metric %q", filename, lineNum, col[0])
		}
		if curr.Value, err = strconv.Atoi(col[1]); err != nil {
			return nil, errors.Wrapf(err, "%s line %d", filename, lineNum)
		}
		if curr.Count, err = strconv.Atoi(col[2]); err != nil {
			return nil, errors.Wrapf(err, "%s line %d", filename, lineNum)
		}
		if curr.Tolerance, err = strconv.Atoi(col[3]); err != nil {
			return nil, errors.Wrapf(err, "%s line %d", filename, lineNum)
		}
		if curr.StrandSensitive, err = strconv.ParseBool(col[4]); err != nil {
			return nil, errors.Wrapf(err, "%s line %d", filename, lineNum)
		}
		ans = append(ans, curr)
	}
	return ans, nil
}

// grid is the layout shared by the chart renderers: tolerances along x, one
// panel per strand mode and one stacked series per value.
type grid struct {
	tolerances []int
	modes      []bool
	values     []int
	counts     map[sweep.Run]map[int]int
}

func newGrid(bins []sweep.HistogramBin, m sweep.Metric) grid {
	g := grid{counts: make(map[sweep.Run]map[int]int)}
	tols := make(map[int]bool)
	modes := make(map[bool]bool)
	values := make(map[int]bool)
	for _, b := range sweep.Filter(bins, m) {
		tols[b.Tolerance] = true
		modes[b.StrandSensitive] = true
		values[b.Value] = true
		if g.counts[b.Run()] == nil {
			g.counts[b.Run()] = make(map[int]int)
		}
		g.counts[b.Run()][b.Value] += b.Count
	}
	for t := range tols {
		g.tolerances = append(g.tolerances, t)
	}
	sort.Ints(g.tolerances)
	for v := range values {
		g.values = append(g.values, v)
	}
	sort.Ints(g.values)
	for _, s := range []bool{true, false} {
		if modes[s] {
			g.modes = append(g.modes, s)
		}
	}
	return g
}

// series returns the count of clusters with value v at each tolerance.
func (g grid) series(strandSensitive bool, v int) []float64 {
	ans := make([]float64, len(g.tolerances))
	for i, t := range g.tolerances {
		ans[i] = float64(g.counts[sweep.Run{Tolerance: t, StrandSensitive: strandSensitive}][v])
	}
	return ans
}

func (g grid) labels() []string {
	ans := make([]string, len(g.tolerances))
	for i, t := range g.tolerances {
		ans[i] = strconv.Itoa(t)
	}
	return ans
}

func panelTitle(strandSensitive bool) string {
	return fmt.Sprintf("consider_strand = %t", strandSensitive)
}
