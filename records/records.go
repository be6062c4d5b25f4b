// Package records parses the tab-separated interval records written by the
// per-tool BED combination step: chr, start, end, name, score, strand, sample, tool.
package records

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/RushAlz/circrna/strand"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/fileio"
)

var log = logging.MustGetLogger("records")

// NumColumns is the number of tab-separated fields in a record line.
const NumColumns = 8

var columnNames = [NumColumns]string{"chr", "start", "end", "name", "score", "strand", "sample", "tool"}

// Record is one input line. Name and Score are carried but not used for clustering.
type Record struct {
	Chrom  string
	Start  int
	End    int
	Name   string
	Score  float64 // NaN when the column is "."
	Strand strand.Strand
	Sample string
	Tool   string
}

// String returns r in input format.
func (r Record) String() string {
	score := "."
	if !math.IsNaN(r.Score) {
		score = strconv.FormatFloat(r.Score, 'g', -1, 64)
	}
	return fmt.Sprintf("%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s", r.Chrom, r.Start, r.End, r.Name, score, r.Strand, r.Sample, r.Tool)
}

// InputError describes a malformed record.
type InputError struct {
	File   string
	Line   int    // 1-based, 0 if unknown
	Column string // empty when the error concerns the whole line
	Msg    string
}

func (e *InputError) Error() string {
	s := new(strings.Builder)
	s.WriteString("malformed record")
	if e.File != "" {
		fmt.Fprintf(s, " in %s", e.File)
	}
	if e.Line > 0 {
		fmt.Fprintf(s, " on line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(s, " column %s", e.Column)
	}
	fmt.Fprintf(s, ": %s", e.Msg)
	return s.String()
}

// ParseLine parses a single tab-separated record. Errors are always *InputError.
func ParseLine(line string) (Record, error) {
	var r Record
	var err error
	col := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(col) != NumColumns {
		return r, &InputError{Msg: fmt.Sprintf("expected %d columns, found %d", NumColumns, len(col))}
	}

	for _, i := range []int{0, 6, 7} {
		if col[i] == "" {
			return r, &InputError{Column: columnNames[i], Msg: "empty field"}
		}
	}
	r.Chrom = col[0]
	r.Name = col[3]
	r.Sample = col[6]
	r.Tool = col[7]

	r.Start, err = strconv.Atoi(col[1])
	if err != nil {
		return r, &InputError{Column: columnNames[1], Msg: fmt.Sprintf("non-integer coordinate %q", col[1])}
	}
	r.End, err = strconv.Atoi(col[2])
	if err != nil {
		return r, &InputError{Column: columnNames[2], Msg: fmt.Sprintf("non-integer coordinate %q", col[2])}
	}
	switch {
	case r.Start < 0:
		return r, &InputError{Column: columnNames[1], Msg: fmt.Sprintf("negative start %d", r.Start)}
	case r.End < r.Start:
		return r, &InputError{Column: columnNames[2], Msg: fmt.Sprintf("end %d is before start %d", r.End, r.Start)}
	}

	if col[4] == "." || col[4] == "" {
		r.Score = math.NaN()
	} else {
		r.Score, err = strconv.ParseFloat(col[4], 64)
		if err != nil {
			return r, &InputError{Column: columnNames[4], Msg: fmt.Sprintf("non-numeric score %q", col[4])}
		}
	}

	r.Strand, err = strand.Parse(col[5])
	if err != nil {
		return r, &InputError{Column: columnNames[5], Msg: err.Error()}
	}
	return r, nil
}

// Options controls how Read treats malformed lines.
type Options struct {
	// SkipMalformed logs and drops malformed lines instead of failing the read.
	SkipMalformed bool
}

// Read parses every record in filenames, in order. Files may be gzipped.
// Lines starting with '#' and blank lines are ignored.
func Read(filenames []string, opts Options) ([]Record, error) {
	var ans []Record
	for _, filename := range filenames {
		recs, err := readFile(filename, opts)
		if err != nil {
			return nil, err
		}
		ans = append(ans, recs...)
	}
	log.Infof("read %d records from %d file(s)", len(ans), len(filenames))
	return ans, nil
}

func readFile(filename string, opts Options) ([]Record, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, errors.Wrapf(err, "could not open %s", filename)
	}
	file := fileio.EasyOpen(filename)

	var ans []Record
	var skipped, lineNum int
	var curr Record
	var err error
	var line string
	var done bool
	for line, done = fileio.EasyNextLine(file); !done; line, done = fileio.EasyNextLine(file) {
		lineNum++
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		curr, err = ParseLine(line)
		if err != nil {
			inErr := err.(*InputError)
			inErr.File = filename
			inErr.Line = lineNum
			if !opts.SkipMalformed {
				file.Close()
				return nil, inErr
			}
			log.Warningf("skipping: %v", inErr)
			skipped++
			continue
		}
		ans = append(ans, curr)
	}

	if err = file.Close(); err != nil {
		return nil, errors.Wrapf(err, "problem closing %s", filename)
	}
	if skipped > 0 {
		log.Warningf("skipped %d malformed lines in %s", skipped, filename)
	}
	log.Debugf("read %d records from %s", len(ans), filename)
	return ans, nil
}
