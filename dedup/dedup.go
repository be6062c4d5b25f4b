// Package dedup collapses records sharing chromosome, start, end and strand into
// unique intervals carrying every tool and sample that reported them.
package dedup

import (
	"fmt"
	"math"
	"sort"

	"github.com/RushAlz/circrna/records"
	"github.com/RushAlz/circrna/strand"
	"github.com/op/go-logging"
	"github.com/vertgenlab/gonomics/bed"
)

var log = logging.MustGetLogger("dedup")

// Key identifies a unique interval.
type Key struct {
	Chrom  string
	Start  int
	End    int
	Strand strand.Strand
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d-%d(%s)", k.Chrom, k.Start, k.End, k.Strand)
}

// Less orders keys by chromosome, start, end, then strand.
func (k Key) Less(o Key) bool {
	switch {
	case k.Chrom != o.Chrom:
		return k.Chrom < o.Chrom
	case k.Start != o.Start:
		return k.Start < o.Start
	case k.End != o.End:
		return k.End < o.End
	default:
		return k.Strand < o.Strand
	}
}

// UniqueInterval is a distinct Key together with the tools and samples that reported it.
// Tools and Samples are never empty.
type UniqueInterval struct {
	Key
	Tools   Set
	Samples Set
}

// ToBed returns u as a BED record. Tool and sample lists go in the annotation columns.
func (u UniqueInterval) ToBed() bed.Bed {
	return bed.Bed{
		Chrom:             u.Chrom,
		ChromStart:        u.Start,
		ChromEnd:          u.End,
		Name:              u.Key.String(),
		Score:             u.Tools.Len(),
		Strand:            u.Strand.ToBed(),
		FieldsInitialized: 8,
		Annotation:        []string{u.Tools.String(), u.Samples.String()},
	}
}

// Deduplicate groups recs by Key. The result is sorted by Key.
func Deduplicate(recs []records.Record) []UniqueInterval {
	m := make(map[Key]int)
	var ans []UniqueInterval
	var k Key
	var idx int
	var found bool
	for _, r := range recs {
		k = Key{Chrom: r.Chrom, Start: r.Start, End: r.End, Strand: r.Strand}
		idx, found = m[k]
		if !found {
			idx = len(ans)
			m[k] = idx
			ans = append(ans, UniqueInterval{Key: k, Tools: NewSet(), Samples: NewSet()})
		}
		ans[idx].Tools.Add(r.Tool)
		ans[idx].Samples.Add(r.Sample)
	}

	sort.Slice(ans, func(i, j int) bool {
		return ans[i].Key.Less(ans[j].Key)
	})
	log.Debugf("collapsed %d records into %d unique intervals", len(recs), len(ans))
	return ans
}

// Expand converts unique intervals back to records, one per tool and sample pair.
// Deduplicating the result gives back u.
func Expand(u []UniqueInterval) []records.Record {
	var ans []records.Record
	for i := range u {
		for _, tool := range u[i].Tools.Sorted() {
			for _, sample := range u[i].Samples.Sorted() {
				ans = append(ans, records.Record{
					Chrom:  u[i].Chrom,
					Start:  u[i].Start,
					End:    u[i].End,
					Name:   ".",
					Score:  math.NaN(),
					Strand: u[i].Strand,
					Sample: sample,
					Tool:   tool,
				})
			}
		}
	}
	return ans
}
