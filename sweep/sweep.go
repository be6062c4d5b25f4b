// Package sweep runs shift clustering over a grid of tolerances and strand modes
// and tabulates how many tools and samples agree on each cluster.
package sweep

import (
	"context"
	"sort"

	"github.com/RushAlz/circrna/cluster"
	"github.com/RushAlz/circrna/dedup"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var log = logging.MustGetLogger("sweep")

// Metric names a histogram in the output table.
type Metric string

const (
	NSamples Metric = "n_samples"
	NTools   Metric = "n_tools"
)

// Metrics lists every metric in output order.
var Metrics = []Metric{NSamples, NTools}

// Title returns the axis/section title used in reports.
func (m Metric) Title() string {
	switch m {
	case NSamples:
		return "Number of samples"
	case NTools:
		return "Number of tools"
	default:
		return string(m)
	}
}

// value returns the metric for one cluster.
func (m Metric) value(c cluster.Cluster) int {
	switch m {
	case NSamples:
		return c.Samples.Len()
	case NTools:
		return c.Tools.Len()
	default:
		log.Panicf("unknown metric %q", m)
		return 0
	}
}

// HistogramBin is one row of the output table: Count clusters had Value distinct
// tools or samples (per Metric) when clustered at Tolerance.
type HistogramBin struct {
	Metric          Metric
	Value           int
	Count           int
	Tolerance       int
	StrandSensitive bool
}

// Run returns the grid point b was computed for.
func (b HistogramBin) Run() Run {
	return Run{Tolerance: b.Tolerance, StrandSensitive: b.StrandSensitive}
}

// Histogram tabulates clusters for one run: n_samples rows then n_tools rows,
// each sorted by value.
func Histogram(clusters []cluster.Cluster, run Run) []HistogramBin {
	var ans []HistogramBin
	for _, m := range Metrics {
		counts := make(map[int]int)
		for i := range clusters {
			counts[m.value(clusters[i])]++
		}
		values := make([]int, 0, len(counts))
		for v := range counts {
			values = append(values, v)
		}
		sort.Ints(values)
		for _, v := range values {
			ans = append(ans, HistogramBin{
				Metric:          m,
				Value:           v,
				Count:           counts[v],
				Tolerance:       run.Tolerance,
				StrandSensitive: run.StrandSensitive,
			})
		}
	}
	return ans
}

// Sweep clusters u at every point of cfg's grid and returns the combined
// histogram table, grouped by run in grid order. Runs execute concurrently; each
// writes only its own slot of the result.
func Sweep(ctx context.Context, u []dedup.UniqueInterval, cfg Config) ([]HistogramBin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := cluster.New(u, cfg.MaxTolerance(), cfg.Threads)
	if err != nil {
		return nil, err
	}

	runs := cfg.Runs()
	results := make([][]HistogramBin, len(runs))
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Threads > 0 {
		g.SetLimit(cfg.Threads)
	}
	for i := range runs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			clusters, err := c.Clusters(runs[i].Tolerance, runs[i].StrandSensitive)
			if err != nil {
				return errors.Wrapf(err, "clustering at %v", runs[i])
			}
			results[i] = Histogram(clusters, runs[i])
			log.Debugf("%v: %d clusters from %d unique intervals", runs[i], len(clusters), c.Len())
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	var ans []HistogramBin
	for i := range results {
		ans = append(ans, results[i]...)
	}
	log.Infof("swept %d parameter combinations over %d unique intervals", len(runs), len(u))
	return ans, nil
}

// ClusterCounts returns the number of clusters in each run of bins.
func ClusterCounts(bins []HistogramBin) map[Run]int {
	ans := make(map[Run]int)
	for _, b := range bins {
		if b.Metric == NTools {
			ans[b.Run()] += b.Count
		}
	}
	return ans
}

// Filter returns the rows of bins for metric m.
func Filter(bins []HistogramBin, m Metric) []HistogramBin {
	var ans []HistogramBin
	for _, b := range bins {
		if b.Metric == m {
			ans = append(ans, b)
		}
	}
	return ans
}
