package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RushAlz/circrna/report"
	"github.com/RushAlz/circrna/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInput = "chr1\t100\t200\tc1\t0\t+\tsampleA\ttool1\n" +
	"chr1\t102\t198\tc2\t0\t+\tsampleB\ttool2\n" +
	"chr1\t500\t600\tc3\t0\t+\tsampleA\ttool1\n"

func TestParseShifts(t *testing.T) {
	got, err := parseShifts("0, 1,2,,50")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 50}, got)

	_, err = parseShifts("1,x")
	assert.Error(t, err)
}

func TestParseStrandModes(t *testing.T) {
	got, err := parseStrandModes("both")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, got)
	got, err = parseStrandModes("false")
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, got)
	_, err = parseStrandModes("sometimes")
	assert.Error(t, err)
}

func TestSweepConfig(t *testing.T) {
	cfg, err := sweepConfig("0,1,2,3,4,5,10,20,50", "both", 2)
	require.NoError(t, err)
	assert.Equal(t, sweep.DefaultTolerances, cfg.Tolerances)
	assert.Equal(t, 2, cfg.Threads)

	_, err = sweepConfig("", "both", 0)
	assert.Error(t, err)
	_, err = sweepConfig("1,-3", "both", 0)
	assert.Error(t, err)
}

func TestInputFiles(t *testing.T) {
	assert.Equal(t, []string{"a.bed", "b.bed", "c.bed"}, inputFiles("a.bed, b.bed", []string{"c.bed"}))
	assert.Empty(t, inputFiles("", nil))
}

func TestSweepFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bed")
	require.NoError(t, os.WriteFile(in, []byte(testInput), 0644))

	cfg, err := sweepConfig("1,5", "true", 1)
	require.NoError(t, err)
	s := sweepSettings{
		inputs:   []string{in},
		output:   filepath.Join(dir, "table.tsv"),
		id:       "test run",
		plotDir:  filepath.Join(dir, "plots"),
		html:     filepath.Join(dir, "report.html"),
		versions: filepath.Join(dir, "versions.yml"),
		process:  "SHIFTS",
		cfg:      cfg,
	}
	require.NoError(t, sweepFiles(s))

	bins, err := report.ReadTable(s.output)
	require.NoError(t, err)
	assert.Equal(t, []sweep.HistogramBin{
		{Metric: sweep.NSamples, Value: 1, Count: 3, Tolerance: 1, StrandSensitive: true},
		{Metric: sweep.NTools, Value: 1, Count: 3, Tolerance: 1, StrandSensitive: true},
		{Metric: sweep.NSamples, Value: 1, Count: 1, Tolerance: 5, StrandSensitive: true},
		{Metric: sweep.NSamples, Value: 2, Count: 1, Tolerance: 5, StrandSensitive: true},
		{Metric: sweep.NTools, Value: 1, Count: 1, Tolerance: 5, StrandSensitive: true},
		{Metric: sweep.NTools, Value: 2, Count: 1, Tolerance: 5, StrandSensitive: true},
	}, bins)

	for _, name := range []string{"n_tools.png", "n_samples.png", "n_tools.shifts_mqc.json", "n_samples.shifts_mqc.json"} {
		_, err = os.Stat(filepath.Join(s.plotDir, name))
		assert.NoError(t, err, name)
	}
	frag, err := os.ReadFile(filepath.Join(s.plotDir, "n_tools.shifts_mqc.json"))
	require.NoError(t, err)
	assert.Contains(t, string(frag), `"id": "test_run_shifts_n_tools"`)

	_, err = os.Stat(s.html)
	assert.NoError(t, err)
	versions, err := os.ReadFile(s.versions)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(versions), "\"SHIFTS\":\n"))
}

func TestSweepFilesMalformed(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bed")
	require.NoError(t, os.WriteFile(in, []byte(testInput+"chr1\tx\t5\tc\t0\t+\ts\tt\n"), 0644))
	cfg, err := sweepConfig("1", "both", 1)
	require.NoError(t, err)

	s := sweepSettings{inputs: []string{in}, output: filepath.Join(dir, "table.tsv"), cfg: cfg}
	assert.Error(t, sweepFiles(s))

	s.skip = true
	assert.NoError(t, sweepFiles(s))
}

func TestClusterFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bed")
	out := filepath.Join(dir, "clusters.bed")
	require.NoError(t, os.WriteFile(in, []byte(testInput), 0644))

	require.NoError(t, clusterFiles([]string{in}, out, 5, true, 2, false))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "chr1\t100\t200\tcluster1\t2\t+"), lines[0])
	assert.Contains(t, lines[0], "tool1,tool2")
}
