package cluster

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/RushAlz/circrna/dedup"
	"github.com/RushAlz/circrna/records"
	"github.com/RushAlz/circrna/strand"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(chrom string, start, end int, s strand.Strand, sample, tool string) records.Record {
	return records.Record{Chrom: chrom, Start: start, End: end, Strand: s, Sample: sample, Tool: tool}
}

func scenario() []dedup.UniqueInterval {
	return dedup.Deduplicate([]records.Record{
		rec("chr1", 100, 200, strand.Plus, "sampleA", "tool1"),
		rec("chr1", 102, 198, strand.Plus, "sampleB", "tool2"),
		rec("chr1", 500, 600, strand.Plus, "sampleA", "tool1"),
	})
}

func sizes(c []Cluster) [][2]int {
	ans := make([][2]int, len(c))
	for i := range c {
		ans[i] = [2]int{c[i].Tools.Len(), c[i].Samples.Len()}
	}
	return ans
}

func TestScenario(t *testing.T) {
	c, err := Partition(scenario(), 5, true)
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, [][2]int{{2, 2}, {1, 1}}, sizes(c))
	assert.Equal(t, []string{"tool1", "tool2"}, c[0].Tools.Sorted())
	assert.Equal(t, []string{"sampleA", "sampleB"}, c[0].Samples.Sorted())
	assert.Equal(t, 100, c[0].Start)
	assert.Equal(t, 200, c[0].End)
	assert.Equal(t, strand.Plus, c[0].Strand)

	c, err = Partition(scenario(), 1, true)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 1}, {1, 1}, {1, 1}}, sizes(c))
}

func TestChain(t *testing.T) {
	u := dedup.Deduplicate([]records.Record{
		rec("chr1", 100, 200, strand.Plus, "s1", "t1"),
		rec("chr1", 103, 200, strand.Plus, "s2", "t2"),
		rec("chr1", 106, 200, strand.Plus, "s3", "t3"),
	})
	c, err := Partition(u, 3, true)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Len(t, c[0].Members, 3)
	assert.Equal(t, 3, c[0].Tools.Len())
	assert.Equal(t, 3, c[0].Samples.Len())

	c, err = Partition(u, 2, true)
	require.NoError(t, err)
	assert.Len(t, c, 3)
}

func TestEndChain(t *testing.T) {
	// linked through the middle interval on the end coordinate only
	u := dedup.Deduplicate([]records.Record{
		rec("chr1", 100, 200, strand.Minus, "s1", "t1"),
		rec("chr1", 101, 204, strand.Minus, "s1", "t1"),
		rec("chr1", 102, 208, strand.Minus, "s1", "t2"),
		rec("chr1", 103, 230, strand.Minus, "s1", "t3"),
	})
	c, err := Partition(u, 4, true)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{2, 1}, {1, 1}}, sizes(c))
}

func TestStrand(t *testing.T) {
	u := dedup.Deduplicate([]records.Record{
		rec("chr1", 100, 200, strand.Plus, "s1", "t1"),
		rec("chr1", 100, 200, strand.Minus, "s2", "t2"),
		rec("chr1", 101, 201, strand.None, "s3", "t3"),
	})
	c, err := Partition(u, 2, true)
	require.NoError(t, err)
	assert.Len(t, c, 3)
	for i := range c {
		for _, m := range c[i].Members {
			assert.Equal(t, c[i].Strand, m.Strand)
		}
	}

	c, err = Partition(u, 2, false)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, strand.None, c[0].Strand)
	assert.Equal(t, 3, c[0].Tools.Len())
}

func TestChromosomesNeverLink(t *testing.T) {
	u := dedup.Deduplicate([]records.Record{
		rec("chr1", 100, 200, strand.Plus, "s1", "t1"),
		rec("chr2", 100, 200, strand.Plus, "s2", "t2"),
	})
	c, err := Partition(u, 50, false)
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, "chr1", c[0].Chrom)
	assert.Equal(t, "chr2", c[1].Chrom)
}

func TestErrors(t *testing.T) {
	_, err := Partition(scenario(), -1, true)
	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))

	c, err := New(scenario(), 5, 1)
	require.NoError(t, err)
	_, err = c.Clusters(6, true)
	assert.True(t, errors.As(err, &cfgErr))
	_, err = c.Clusters(-2, false)
	assert.True(t, errors.As(err, &cfgErr))
}

func TestEmpty(t *testing.T) {
	c, err := Partition(nil, 0, true)
	require.NoError(t, err)
	assert.Empty(t, c)
}

func randomIntervals(r *rand.Rand, n int) []dedup.UniqueInterval {
	strands := []strand.Strand{strand.Plus, strand.Minus, strand.None}
	chroms := []string{"chr1", "chr2", "chrM"}
	recs := make([]records.Record, n)
	for i := range recs {
		start := r.Intn(300)
		recs[i] = rec(chroms[r.Intn(len(chroms))], start, start+50+r.Intn(40), strands[r.Intn(len(strands))],
			string(rune('A'+r.Intn(6))), string(rune('a'+r.Intn(4))))
	}
	return dedup.Deduplicate(recs)
}

// naive is an all-pairs union-find reference.
func naive(u []dedup.UniqueInterval, shift int, strandSensitive bool) []int {
	parent := make([]int, len(u))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := range u {
		for j := i + 1; j < len(u); j++ {
			if u[i].Chrom != u[j].Chrom || (strandSensitive && u[i].Strand != u[j].Strand) {
				continue
			}
			if abs(u[i].Start-u[j].Start) <= shift && abs(u[i].End-u[j].End) <= shift {
				parent[find(i)] = find(j)
			}
		}
	}
	count := make(map[int]int)
	for i := range u {
		count[find(i)]++
	}
	var ans []int
	for _, n := range count {
		ans = append(ans, n)
	}
	sort.Ints(ans)
	return ans
}

func memberCounts(c []Cluster) []int {
	ans := make([]int, len(c))
	for i := range c {
		ans[i] = len(c[i].Members)
	}
	sort.Ints(ans)
	return ans
}

func TestAgainstNaive(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	u := randomIntervals(r, 400)
	c, err := New(u, 50, 2)
	require.NoError(t, err)
	assert.Equal(t, len(u), c.Len())
	for _, shift := range []int{0, 1, 2, 3, 4, 5, 10, 20, 50} {
		for _, s := range []bool{true, false} {
			got, err := c.Clusters(shift, s)
			require.NoError(t, err)
			assert.Equal(t, naive(u, shift, s), memberCounts(got), "shift=%d strand=%v", shift, s)
		}
	}
}

func TestPartitionAndMonotonicity(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	u := randomIntervals(r, 300)
	c, err := New(u, 50, 0)
	require.NoError(t, err)

	for _, s := range []bool{true, false} {
		prev := len(u) + 1
		for shift := 0; shift <= 50; shift++ {
			got, err := c.Clusters(shift, s)
			require.NoError(t, err)

			seen := make(map[dedup.Key]int)
			for i := range got {
				for _, m := range got[i].Members {
					seen[m.Key]++
					if s {
						assert.Equal(t, got[i].Strand, m.Strand)
					}
					assert.Equal(t, got[i].Chrom, m.Chrom)
				}
			}
			require.Len(t, seen, len(u))
			for k, n := range seen {
				require.Equal(t, 1, n, "%v in %d clusters", k, n)
			}

			assert.LessOrEqual(t, len(got), prev, "cluster count grew at shift %d", shift)
			prev = len(got)
		}
	}
}

func TestToBed(t *testing.T) {
	c, err := Partition(scenario(), 5, true)
	require.NoError(t, err)
	b := c[0].ToBed("cluster1")
	assert.Equal(t, 100, b.ChromStart)
	assert.Equal(t, 200, b.ChromEnd)
	assert.Equal(t, 2, b.Score)
	assert.Equal(t, []string{"2", "tool1,tool2", "sampleA,sampleB"}, b.Annotation)
}
