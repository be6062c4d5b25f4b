package report

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"
)

// reportedModules are the dependencies listed in versions.yml.
var reportedModules = []string{
	"github.com/vertgenlab/gonomics",
	"gonum.org/v1/gonum",
	"gonum.org/v1/plot",
	"github.com/go-echarts/go-echarts/v2",
	"github.com/biogo/store",
}

// WriteVersions writes a versions.yml block for process listing the Go runtime,
// the tool version and the main dependency versions.
func WriteVersions(w io.Writer, process, version string) error {
	s := new(strings.Builder)
	fmt.Fprintf(s, "%q:\n", process)
	fmt.Fprintf(s, "  shifttools: %s\n", version)
	fmt.Fprintf(s, "  go: %s\n", strings.TrimPrefix(runtime.Version(), "go"))
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range info.Deps {
			for _, name := range reportedModules {
				if dep.Path == name {
					fmt.Fprintf(s, "  %s: %s\n", name, dep.Version)
				}
			}
		}
	}
	_, err := io.WriteString(w, s.String())
	return err
}
