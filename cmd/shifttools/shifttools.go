package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/RushAlz/circrna/sweep"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/exception"
)

const version string = "0.1.0"

var log = logging.MustGetLogger("shifttools")

var logFormat = logging.MustStringFormatter(`%{time:15:04:05.000} %{module} %{level:.4s} %{message}`)

type subcommand struct {
	name     string
	function func(args []string)
	blurb    string
}

// SubCommands contains all valid subcommands.
var SubCommands = []*subcommand{
	{"sweep", runSweep, "cluster intervals over a grid of shifts and tabulate tool/sample agreement"},
	{"cluster", runCluster, "write the clusters for a single shift as bed"},
	{"dedup", runDedup, "collapse identical intervals and write them as bed"},
	{"report", runReport, "render plots and report fragments from a sweep table"},
}

func usage() {
	s := new(strings.Builder)
	s.WriteString(
		"Program: shifttools (agreement between circRNA detection tools under positional tolerance)\n" +
			"Version: " + version + "\n" +
			"\nUsage:\tshifttools <command> [options]\n\n" +
			"Commands:\n")

	// add subcommand text via tabwriter so the columns align
	w := tabwriter.NewWriter(s, 0, 8, 5, '\t', tabwriter.AlignRight)
	for i := range SubCommands {
		fmt.Fprintf(w, "\t%s\t%s\n", SubCommands[i].name, SubCommands[i].blurb)
	}
	w.Flush()
	fmt.Print(s.String())
}

// commandMap builds a map of possible subcommands keyed on the name of the subcommand
func commandMap() map[string]func(args []string) {
	m := make(map[string]func(args []string))
	for i := range SubCommands {
		m[SubCommands[i].name] = SubCommands[i].function
	}
	return m
}

func main() {
	flag.Usage = usage
	flag.Parse()
	setupLogging(0)

	command := commandMap()[flag.Arg(0)]
	if command == nil {
		flag.Usage()
		return
	}

	command(flag.Args()[1:])
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func cleanup(f io.Closer) {
	err := f.Close()
	exception.PanicOnErr(err)
}

// setupLogging logs warnings and errors only, INFO with verbose 1 and DEBUG above.
func setupLogging(verbose int) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), logFormat)
	leveled := logging.AddModuleLevel(backend)
	switch {
	case verbose >= 2:
		leveled.SetLevel(logging.DEBUG, "")
	case verbose == 1:
		leveled.SetLevel(logging.INFO, "")
	default:
		leveled.SetLevel(logging.WARNING, "")
	}
	logging.SetBackend(leveled)
}

// inputFiles splits a comma separated -i value and appends any positional arguments.
func inputFiles(list string, positional []string) []string {
	var ans []string
	for _, f := range strings.Split(list, ",") {
		if f = strings.TrimSpace(f); f != "" {
			ans = append(ans, f)
		}
	}
	return append(ans, positional...)
}

func parseShifts(s string) ([]int, error) {
	var ans []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Errorf("malformed shift %q", field)
		}
		ans = append(ans, v)
	}
	return ans, nil
}

// parseStrandModes accepts "both", "true" or "false".
func parseStrandModes(s string) ([]bool, error) {
	switch strings.ToLower(s) {
	case "both":
		return []bool{true, false}, nil
	case "true", "yes", "consider":
		return []bool{true}, nil
	case "false", "no", "ignore":
		return []bool{false}, nil
	default:
		return nil, errors.Errorf("malformed strand mode %q, expected both, true or false", s)
	}
}

func sweepConfig(shifts, strandModes string, threads int) (sweep.Config, error) {
	var err error
	cfg := sweep.Config{Threads: threads}
	if cfg.Tolerances, err = parseShifts(shifts); err != nil {
		return cfg, err
	}
	if cfg.StrandModes, err = parseStrandModes(strandModes); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
