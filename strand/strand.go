package strand

import (
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/bed"
)

// Strand is the orientation of an interval as written in column 6 of a BED file.
type Strand byte

const (
	Plus  Strand = '+'
	Minus Strand = '-'
	None  Strand = '.'
)

// Parse converts a BED strand column to a Strand. Only "+", "-" and "." are accepted.
func Parse(s string) (Strand, error) {
	if len(s) != 1 {
		return None, errors.Errorf("malformed strand %q", s)
	}
	switch Strand(s[0]) {
	case Plus, Minus, None:
		return Strand(s[0]), nil
	default:
		return None, errors.Errorf("malformed strand %q", s)
	}
}

func (s Strand) String() string {
	return string(s)
}

// IsPos reports whether s is the forward strand.
func (s Strand) IsPos() bool {
	return s == Plus
}

// ToBed converts s for writing with the gonomics bed package.
func (s Strand) ToBed() bed.Strand {
	switch s {
	case Plus:
		return bed.Positive
	case Minus:
		return bed.Negative
	default:
		return bed.None
	}
}
