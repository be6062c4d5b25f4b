package dedup

import (
	"testing"

	"github.com/RushAlz/circrna/records"
	"github.com/RushAlz/circrna/strand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(chrom string, start, end int, s strand.Strand, sample, tool string) records.Record {
	return records.Record{Chrom: chrom, Start: start, End: end, Strand: s, Sample: sample, Tool: tool}
}

func TestDeduplicate(t *testing.T) {
	recs := []records.Record{
		rec("chr2", 10, 20, strand.Plus, "s1", "t1"),
		rec("chr1", 100, 200, strand.Plus, "s1", "t1"),
		rec("chr1", 100, 200, strand.Plus, "s2", "t1"),
		rec("chr1", 100, 200, strand.Minus, "s1", "t2"),
		rec("chr1", 100, 200, strand.Plus, "s2", "t3"),
	}
	u := Deduplicate(recs)
	require.Len(t, u, 3)

	assert.Equal(t, Key{"chr1", 100, 200, strand.Plus}, u[0].Key)
	assert.Equal(t, []string{"t1", "t3"}, u[0].Tools.Sorted())
	assert.Equal(t, []string{"s1", "s2"}, u[0].Samples.Sorted())

	assert.Equal(t, Key{"chr1", 100, 200, strand.Minus}, u[1].Key)
	assert.Equal(t, "t2", u[1].Tools.String())

	assert.Equal(t, "chr2", u[2].Chrom)

	keys := make(map[Key]bool)
	for i := range u {
		assert.False(t, keys[u[i].Key], "duplicate key %v", u[i].Key)
		keys[u[i].Key] = true
		assert.NotZero(t, u[i].Tools.Len())
		assert.NotZero(t, u[i].Samples.Len())
	}
}

func TestDeduplicateEmpty(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
}

func TestDeduplicateIdempotent(t *testing.T) {
	recs := []records.Record{
		rec("chr1", 100, 200, strand.Plus, "sampleA", "tool1"),
		rec("chr1", 102, 198, strand.Plus, "sampleB", "tool2"),
		rec("chr1", 102, 198, strand.Plus, "sampleA", "tool2"),
		rec("chr1", 500, 600, strand.Plus, "sampleA", "tool1"),
		rec("chr1", 500, 600, strand.None, "sampleC", "tool3"),
	}
	once := Deduplicate(recs)
	assert.Equal(t, once, Deduplicate(recs))
	assert.Equal(t, once, Deduplicate(Expand(once)))
	assert.Equal(t, once, Deduplicate(append(recs, recs...)))
}

func TestSetUnion(t *testing.T) {
	a := NewSet("x", "y")
	b := NewSet("y", "z")
	c := a.Union(b)
	assert.Equal(t, []string{"x", "y", "z"}, c.Sorted())
	assert.Equal(t, 2, a.Len())
	assert.False(t, a.Contains("z"))
	assert.True(t, c.Contains("z"))
}

func TestToBed(t *testing.T) {
	u := Deduplicate([]records.Record{rec("chr1", 1, 5, strand.Minus, "s", "t")})
	b := u[0].ToBed()
	assert.Equal(t, "chr1", b.Chrom)
	assert.Equal(t, 1, b.ChromStart)
	assert.Equal(t, 5, b.ChromEnd)
	assert.Equal(t, []string{"t", "s"}, b.Annotation)
}
