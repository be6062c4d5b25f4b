package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/RushAlz/circrna/report"
	"github.com/vertgenlab/gonomics/exception"
)

func reportUsage(reportFlags *flag.FlagSet) {
	fmt.Print(
		"report - render plots, MultiQC fragments and an html report from a table written by 'shifttools sweep'\n\n" +
			"Usage:\n" +
			"  shifttools report [options] -i table.tsv -plots plots/\n\n" +
			"Options:\n")
	reportFlags.PrintDefaults()
}

func runReport(args []string) {
	var err error
	reportFlags := flag.NewFlagSet("report", flag.ExitOnError)

	input := reportFlags.String("i", "", "Input histogram table from 'shifttools sweep'.")
	id := reportFlags.String("id", "shifts", "Run identifier used in report section ids.")
	plotDir := reportFlags.String("plots", "", "Directory for <metric>.png plots and <metric>.shifts_mqc.json MultiQC fragments.")
	html := reportFlags.String("html", "", "Output interactive html report.")
	summary := reportFlags.Bool("summary", false, "Print a terminal plot of cluster counts to stderr.")
	verbose := reportFlags.Int("v", 0, "Verbose output by setting to >0.")

	err = reportFlags.Parse(args)
	exception.PanicOnErr(err)
	reportFlags.Usage = func() { reportUsage(reportFlags) }
	setupLogging(*verbose)

	if *input == "" || (*plotDir == "" && *html == "" && !*summary) {
		reportFlags.Usage()
		errExit("\nERROR: must have -i and at least one of -plots, -html or -summary")
	}

	bins, err := report.ReadTable(*input)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if err = writeReports(bins, *id, *plotDir, *html); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if *summary {
		fmt.Fprintln(os.Stderr, report.Summary(bins))
	}
}
