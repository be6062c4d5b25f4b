package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RushAlz/circrna/dedup"
	"github.com/RushAlz/circrna/records"
	"github.com/RushAlz/circrna/report"
	"github.com/RushAlz/circrna/sweep"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

func sweepUsage(sweepFlags *flag.FlagSet) {
	fmt.Print(
		"sweep - cluster intervals reported by several tools and samples at each shift tolerance and\n" +
			"\ttabulate how many distinct tools and samples fall into each cluster\n\n" +
			"Usage:\n" +
			"  shifttools sweep [options] -i a.bed,b.bed -id sample > table.tsv\n\n" +
			"Input bed columns: chr start end name score strand sample tool\n\n" +
			"Options:\n")
	sweepFlags.PrintDefaults()
}

type sweepSettings struct {
	inputs   []string
	output   string
	id       string
	plotDir  string
	html     string
	versions string
	process  string
	cfg      sweep.Config
	skip     bool
	verbose  int
}

func runSweep(args []string) {
	var err error
	sweepFlags := flag.NewFlagSet("sweep", flag.ExitOnError)

	input := sweepFlags.String("i", "", "Comma separated input bed files. Positional arguments are also read as inputs.")
	output := sweepFlags.String("o", "stdout", "Output histogram table.")
	id := sweepFlags.String("id", "shifts", "Run identifier used in report section ids.")
	shifts := sweepFlags.String("shifts", "0,1,2,3,4,5,10,20,50", "Comma separated shift tolerances to sweep.")
	strandModes := sweepFlags.String("strand", "both", "Strand modes to sweep: both, true (consider strand) or false (ignore strand).")
	plotDir := sweepFlags.String("plots", "", "Directory for <metric>.png plots and <metric>.shifts_mqc.json MultiQC fragments.")
	html := sweepFlags.String("html", "", "Output interactive html report.")
	versions := sweepFlags.String("versions", "", "Output versions.yml.")
	process := sweepFlags.String("process", "COMBINEBEDS_SHIFTS", "Process name written to versions.yml.")
	threads := sweepFlags.Int("threads", 0, "Number of parameter combinations clustered in parallel. 0 uses all CPUs.")
	skip := sweepFlags.Bool("skip", false, "Skip malformed input lines with a warning instead of exiting.")
	verbose := sweepFlags.Int("v", 0, "Verbose output by setting to >0.")

	err = sweepFlags.Parse(args)
	exception.PanicOnErr(err)
	sweepFlags.Usage = func() { sweepUsage(sweepFlags) }
	setupLogging(*verbose)

	inputs := inputFiles(*input, sweepFlags.Args())
	if len(inputs) == 0 {
		sweepFlags.Usage()
		errExit("\nERROR: must have at least one input bed file")
	}

	cfg, err := sweepConfig(*shifts, *strandModes, *threads)
	if err != nil {
		sweepFlags.Usage()
		errExit("\nERROR: " + err.Error())
	}

	err = sweepFiles(sweepSettings{
		inputs:   inputs,
		output:   *output,
		id:       *id,
		plotDir:  *plotDir,
		html:     *html,
		versions: *versions,
		process:  *process,
		cfg:      cfg,
		skip:     *skip,
		verbose:  *verbose,
	})
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func sweepFiles(s sweepSettings) error {
	recs, err := records.Read(s.inputs, records.Options{SkipMalformed: s.skip})
	if err != nil {
		return err
	}
	u := dedup.Deduplicate(recs)
	log.Infof("%d records, %d unique intervals", len(recs), len(u))

	bins, err := sweep.Sweep(context.Background(), u, s.cfg)
	if err != nil {
		return err
	}

	out := fileio.EasyCreate(s.output)
	err = report.WriteTable(out, bins)
	exception.PanicOnErr(err)
	cleanup(out)

	if err = writeReports(bins, s.id, s.plotDir, s.html); err != nil {
		return err
	}

	if s.versions != "" {
		out = fileio.EasyCreate(s.versions)
		err = report.WriteVersions(out, s.process, version)
		exception.PanicOnErr(err)
		cleanup(out)
	}

	if s.verbose > 0 {
		fmt.Fprintln(os.Stderr, report.Summary(bins))
	}
	return nil
}

// writeReports writes the plots, MultiQC fragments and html report that were
// requested. Empty paths are skipped.
func writeReports(bins []sweep.HistogramBin, id, plotDir, html string) error {
	if plotDir != "" && len(bins) > 0 {
		if err := os.MkdirAll(plotDir, 0755); err != nil {
			return err
		}
		for _, m := range sweep.Metrics {
			png, err := report.PlotMetric(bins, m)
			if err != nil {
				return err
			}
			if err = os.WriteFile(filepath.Join(plotDir, string(m)+".png"), png, 0644); err != nil {
				return err
			}

			out := fileio.EasyCreate(filepath.Join(plotDir, string(m)+".shifts_mqc.json"))
			err = report.WriteFragment(out, report.NewFragment(reportID(id), m, png))
			exception.PanicOnErr(err)
			cleanup(out)
			log.Infof("wrote %s plot and MultiQC fragment to %s", m, plotDir)
		}
	} else if plotDir != "" {
		log.Warning("no clusters, skipping plots")
	}

	if html != "" {
		out := fileio.EasyCreate(html)
		err := report.WriteHTML(out, bins, id)
		exception.PanicOnErr(err)
		cleanup(out)
	}
	return nil
}

// reportID strips characters that MultiQC does not accept in section ids.
func reportID(id string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' {
			return '_'
		}
		return r
	}, id)
}
