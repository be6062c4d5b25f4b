package cluster

import (
	"math"

	"github.com/RushAlz/circrna/dedup"
	"github.com/RushAlz/circrna/strand"
	"github.com/biogo/store/interval"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
)

// chromGraph links every pair of intervals on one chromosome whose starts and ends
// are both within maxShift. Edge weight is the larger of the two differences, so
// the links present at a smaller shift are the edges with weight <= shift.
type chromGraph struct {
	chrom     string
	intervals []dedup.UniqueInterval
	strands   []strand.Strand
	g         *simple.WeightedUndirectedGraph
	edges     int
}

// startPoint stores an interval's start in the search tree.
type startPoint struct {
	id    uintptr
	start int
}

func (p startPoint) ID() uintptr { return p.id }
func (p startPoint) Range() interval.IntRange {
	return interval.IntRange{Start: p.start, End: p.start + 1}
}
func (p startPoint) Overlap(b interval.IntRange) bool {
	return p.start+1 > b.Start && p.start < b.End
}

// window is a half-open query range over start positions.
type window interval.IntRange

func (w window) Overlap(b interval.IntRange) bool {
	return w.End > b.Start && w.Start < b.End
}

func buildGraph(chrom string, intervals []dedup.UniqueInterval, maxShift int) *chromGraph {
	cg := &chromGraph{
		chrom:     chrom,
		intervals: intervals,
		strands:   make([]strand.Strand, len(intervals)),
		g:         simple.NewWeightedUndirectedGraph(0, math.Inf(1)),
	}

	tree := &interval.IntTree{}
	for i := range intervals {
		cg.strands[i] = intervals[i].Strand
		cg.g.AddNode(simple.Node(i))
		if err := tree.Insert(startPoint{id: uintptr(i), start: intervals[i].Start}, true); err != nil {
			log.Panicf("could not index %v: %v", intervals[i].Key, err)
		}
	}
	tree.AdjustRanges()

	var j, dStart, dEnd int
	for i := range intervals {
		q := window{Start: intervals[i].Start - maxShift, End: intervals[i].Start + maxShift + 1}
		for _, e := range tree.Get(q) {
			j = int(e.ID())
			if j <= i {
				continue
			}
			dStart = abs(intervals[i].Start - intervals[j].Start)
			dEnd = abs(intervals[i].End - intervals[j].End)
			if dStart > maxShift || dEnd > maxShift {
				continue
			}
			cg.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(i), T: simple.Node(j), W: float64(max(dStart, dEnd))})
			cg.edges++
		}
	}
	return cg
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// thresholdGraph is an undirected graph where only edges with a weight of at most
// shift are returned or traversed. When strands is non-nil, edges joining
// intervals on different strands are hidden as well.
type thresholdGraph struct {
	*simple.WeightedUndirectedGraph
	shift   float64
	strands []strand.Strand
}

// From returns all nodes in g that can be reached directly from n.
func (g thresholdGraph) From(n int64) graph.Nodes {
	if g.Node(n) == nil {
		return iterator.NewOrderedNodes(nil)
	}

	var nodes []graph.Node
	for _, to := range graph.NodesOf(g.WeightedUndirectedGraph.From(n)) {
		if g.HasEdgeBetween(n, to.ID()) {
			nodes = append(nodes, to)
		}
	}
	return iterator.NewOrderedNodes(nodes)
}

// HasEdgeBetween returns whether a visible edge exists between nodes x and y.
func (g thresholdGraph) HasEdgeBetween(x, y int64) bool {
	w, ok := g.WeightedUndirectedGraph.Weight(x, y)
	if !ok || x == y || w > g.shift {
		return false
	}
	if g.strands != nil && g.strands[x] != g.strands[y] {
		return false
	}
	return true
}

// Edge returns the edge from u to v if it is visible.
func (g thresholdGraph) Edge(u, v int64) graph.Edge {
	return g.EdgeBetween(u, v)
}

// EdgeBetween returns the edge between x and y if it is visible.
func (g thresholdGraph) EdgeBetween(x, y int64) graph.Edge {
	if !g.HasEdgeBetween(x, y) {
		return nil
	}
	return g.WeightedUndirectedGraph.EdgeBetween(x, y)
}
