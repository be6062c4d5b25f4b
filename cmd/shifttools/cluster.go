package main

import (
	"flag"
	"fmt"

	"github.com/RushAlz/circrna/cluster"
	"github.com/RushAlz/circrna/dedup"
	"github.com/RushAlz/circrna/records"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

func clusterUsage(clusterFlags *flag.FlagSet) {
	fmt.Print(
		"cluster - group intervals whose starts and ends are both within -shift of each other (transitively)\n" +
			"\tand write one bed record per cluster\n\n" +
			"Output columns: chr start end name nTools strand nIntervals tools samples\n\n" +
			"Usage:\n" +
			"  shifttools cluster [options] -i a.bed,b.bed -shift 5 > clusters.bed\n\n" +
			"Options:\n")
	clusterFlags.PrintDefaults()
}

func runCluster(args []string) {
	var err error
	clusterFlags := flag.NewFlagSet("cluster", flag.ExitOnError)

	input := clusterFlags.String("i", "", "Comma separated input bed files. Positional arguments are also read as inputs.")
	output := clusterFlags.String("o", "stdout", "Output bed file.")
	shift := clusterFlags.Int("shift", 5, "Maximum difference in start and in end for two intervals to be linked.")
	considerStrand := clusterFlags.Bool("strand", true, "Only link intervals on the same strand.")
	minTools := clusterFlags.Int("minTools", 1, "Only write clusters supported by at least this many tools.")
	skip := clusterFlags.Bool("skip", false, "Skip malformed input lines with a warning instead of exiting.")
	verbose := clusterFlags.Int("v", 0, "Verbose output by setting to >0.")

	err = clusterFlags.Parse(args)
	exception.PanicOnErr(err)
	clusterFlags.Usage = func() { clusterUsage(clusterFlags) }
	setupLogging(*verbose)

	inputs := inputFiles(*input, clusterFlags.Args())
	if len(inputs) == 0 {
		clusterFlags.Usage()
		errExit("\nERROR: must have at least one input bed file")
	}
	if *shift < 0 {
		clusterFlags.Usage()
		errExit("\nERROR: -shift must be >= 0")
	}

	if err = clusterFiles(inputs, *output, *shift, *considerStrand, *minTools, *skip); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func clusterFiles(inputs []string, output string, shift int, considerStrand bool, minTools int, skip bool) error {
	recs, err := records.Read(inputs, records.Options{SkipMalformed: skip})
	if err != nil {
		return err
	}
	clusters, err := cluster.Partition(dedup.Deduplicate(recs), shift, considerStrand)
	if err != nil {
		return err
	}

	out := fileio.EasyCreate(output)
	defer cleanup(out)
	var written int
	for i := range clusters {
		if clusters[i].Tools.Len() < minTools {
			continue
		}
		bed.WriteBed(out, clusters[i].ToBed(fmt.Sprintf("cluster%d", i+1)))
		written++
	}
	log.Infof("wrote %d of %d clusters at shift %d", written, len(clusters), shift)
	return nil
}
