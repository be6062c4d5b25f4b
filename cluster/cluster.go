// Package cluster groups unique intervals whose start and end coordinates are
// both within a shift tolerance of each other. Groups are the connected
// components of that adjacency, so chains of nearby intervals form one cluster
// even when the ends of the chain are further apart than the tolerance.
package cluster

import (
	"fmt"
	"runtime"
	"sort"
	"strconv"

	"github.com/RushAlz/circrna/dedup"
	"github.com/RushAlz/circrna/strand"
	"github.com/op/go-logging"
	"github.com/vertgenlab/gonomics/bed"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/graph/topo"
)

var log = logging.MustGetLogger("cluster")

// ConfigError reports an invalid clustering parameter.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Msg
}

// Cluster is one connected group of unique intervals.
type Cluster struct {
	Chrom string
	// Strand is shared by every member when clustering is strand-sensitive.
	// Otherwise it is the members' strand if they agree, and strand.None if not.
	Strand  strand.Strand
	Start   int // smallest member start
	End     int // largest member end
	Members []dedup.UniqueInterval
	Tools   dedup.Set
	Samples dedup.Set
}

func (c Cluster) String() string {
	return fmt.Sprintf("%s:%d-%d(%s) n=%d tools=%s samples=%s", c.Chrom, c.Start, c.End, c.Strand, len(c.Members), c.Tools, c.Samples)
}

// ToBed returns c as a BED record spanning every member. Score is the number of
// tools; the annotation columns hold the member count, tools and samples.
func (c Cluster) ToBed(name string) bed.Bed {
	return bed.Bed{
		Chrom:             c.Chrom,
		ChromStart:        c.Start,
		ChromEnd:          c.End,
		Name:              name,
		Score:             c.Tools.Len(),
		Strand:            c.Strand.ToBed(),
		FieldsInitialized: 9,
		Annotation:        []string{strconv.Itoa(len(c.Members)), c.Tools.String(), c.Samples.String()},
	}
}

// Clusterer holds the adjacency graphs for one set of unique intervals, built at
// the largest shift it will be asked for. It is safe for concurrent use once New
// returns.
type Clusterer struct {
	maxShift int
	n        int
	chroms   []*chromGraph
}

// New indexes u for clustering at any shift in [0, maxShift]. Chromosomes are
// processed concurrently on up to threads goroutines; threads <= 0 uses every CPU.
func New(u []dedup.UniqueInterval, maxShift, threads int) (*Clusterer, error) {
	if maxShift < 0 {
		return nil, &ConfigError{Msg: fmt.Sprintf("negative shift %d", maxShift)}
	}
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	byChrom := make(map[string][]dedup.UniqueInterval)
	for i := range u {
		byChrom[u[i].Chrom] = append(byChrom[u[i].Chrom], u[i])
	}
	names := make([]string, 0, len(byChrom))
	for chrom := range byChrom {
		names = append(names, chrom)
	}
	sort.Strings(names)

	c := &Clusterer{maxShift: maxShift, n: len(u), chroms: make([]*chromGraph, len(names))}
	var g errgroup.Group
	g.SetLimit(threads)
	for i := range names {
		i := i
		g.Go(func() error {
			c.chroms[i] = buildGraph(names[i], byChrom[names[i]], maxShift)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if log.IsEnabledFor(logging.DEBUG) {
		for _, cg := range c.chroms {
			log.Debugf("%s: %d intervals, %d links within shift %d", cg.chrom, len(cg.intervals), cg.edges, maxShift)
		}
	}
	return c, nil
}

// MaxShift returns the largest shift c can cluster at.
func (c *Clusterer) MaxShift() int {
	return c.maxShift
}

// Len returns the number of unique intervals indexed by c.
func (c *Clusterer) Len() int {
	return c.n
}

// Clusters partitions the intervals into clusters for the given shift. When
// strandSensitive is set, only intervals on the same strand are linked.
// Clusters are ordered by chromosome and then by their first member.
func (c *Clusterer) Clusters(shift int, strandSensitive bool) ([]Cluster, error) {
	switch {
	case shift < 0:
		return nil, &ConfigError{Msg: fmt.Sprintf("negative shift %d", shift)}
	case shift > c.maxShift:
		return nil, &ConfigError{Msg: fmt.Sprintf("shift %d is larger than the indexed maximum %d", shift, c.maxShift)}
	}

	var ans []Cluster
	for _, cg := range c.chroms {
		ans = append(ans, cg.clusters(shift, strandSensitive)...)
	}
	return ans, nil
}

func (cg *chromGraph) clusters(shift int, strandSensitive bool) []Cluster {
	tg := thresholdGraph{WeightedUndirectedGraph: cg.g, shift: float64(shift)}
	if strandSensitive {
		tg.strands = cg.strands
	}
	cc := topo.ConnectedComponents(tg)

	seen := make([]bool, len(cg.intervals))
	components := make([][]int, len(cc))
	var id int
	for i := range cc {
		components[i] = make([]int, len(cc[i]))
		for j, n := range cc[i] {
			id = int(n.ID())
			if seen[id] {
				log.Panicf("%s: interval %v assigned to more than one cluster at shift %d", cg.chrom, cg.intervals[id].Key, shift)
			}
			seen[id] = true
			components[i][j] = id
		}
		sort.Ints(components[i])
	}
	for id = range seen {
		if !seen[id] {
			log.Panicf("%s: interval %v not assigned to any cluster at shift %d", cg.chrom, cg.intervals[id].Key, shift)
		}
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i][0] < components[j][0]
	})

	ans := make([]Cluster, len(components))
	for i := range components {
		ans[i] = cg.newCluster(components[i])
	}
	return ans
}

func (cg *chromGraph) newCluster(ids []int) Cluster {
	first := cg.intervals[ids[0]]
	c := Cluster{
		Chrom:   cg.chrom,
		Strand:  first.Strand,
		Start:   first.Start,
		End:     first.End,
		Members: make([]dedup.UniqueInterval, len(ids)),
	}
	tools := make([]dedup.Set, len(ids))
	samples := make([]dedup.Set, len(ids))
	for i, id := range ids {
		m := cg.intervals[id]
		c.Members[i] = m
		tools[i] = m.Tools
		samples[i] = m.Samples
		if m.Strand != c.Strand {
			c.Strand = strand.None
		}
		c.Start = min(c.Start, m.Start)
		c.End = max(c.End, m.End)
	}
	c.Tools = dedup.NewSet().Union(tools...)
	c.Samples = dedup.NewSet().Union(samples...)
	return c
}

// Partition clusters u at a single shift. Use New to cluster the same intervals
// at several shifts.
func Partition(u []dedup.UniqueInterval, shift int, strandSensitive bool) ([]Cluster, error) {
	c, err := New(u, shift, 0)
	if err != nil {
		return nil, err
	}
	return c.Clusters(shift, strandSensitive)
}
