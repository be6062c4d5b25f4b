package main

import (
	"flag"
	"fmt"

	"github.com/RushAlz/circrna/dedup"
	"github.com/RushAlz/circrna/records"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

func dedupUsage(dedupFlags *flag.FlagSet) {
	fmt.Print(
		"dedup - collapse records with identical chr, start, end and strand\n\n" +
			"Output columns: chr start end key nTools strand tools samples\n\n" +
			"Usage:\n" +
			"  shifttools dedup [options] -i a.bed,b.bed > unique.bed\n\n" +
			"Options:\n")
	dedupFlags.PrintDefaults()
}

func runDedup(args []string) {
	var err error
	dedupFlags := flag.NewFlagSet("dedup", flag.ExitOnError)

	input := dedupFlags.String("i", "", "Comma separated input bed files. Positional arguments are also read as inputs.")
	output := dedupFlags.String("o", "stdout", "Output bed file.")
	skip := dedupFlags.Bool("skip", false, "Skip malformed input lines with a warning instead of exiting.")
	verbose := dedupFlags.Int("v", 0, "Verbose output by setting to >0.")

	err = dedupFlags.Parse(args)
	exception.PanicOnErr(err)
	dedupFlags.Usage = func() { dedupUsage(dedupFlags) }
	setupLogging(*verbose)

	inputs := inputFiles(*input, dedupFlags.Args())
	if len(inputs) == 0 {
		dedupFlags.Usage()
		errExit("\nERROR: must have at least one input bed file")
	}

	recs, err := records.Read(inputs, records.Options{SkipMalformed: *skip})
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	out := fileio.EasyCreate(*output)
	defer cleanup(out)
	for _, u := range dedup.Deduplicate(recs) {
		bed.WriteBed(out, u.ToBed())
	}
}
