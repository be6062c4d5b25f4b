package sweep

import (
	"fmt"

	"github.com/RushAlz/circrna/cluster"
	"golang.org/x/exp/slices"
)

// ConfigError reports an invalid parameter grid.
type ConfigError = cluster.ConfigError

// DefaultTolerances are the shifts swept when none are configured.
var DefaultTolerances = []int{0, 1, 2, 3, 4, 5, 10, 20, 50}

// DefaultStrandModes clusters once considering strand and once ignoring it.
var DefaultStrandModes = []bool{true, false}

// Config is the parameter grid for a sweep.
type Config struct {
	Tolerances  []int
	StrandModes []bool
	Threads     int // <= 0 uses every CPU
}

func DefaultConfig() Config {
	return Config{
		Tolerances:  slices.Clone(DefaultTolerances),
		StrandModes: slices.Clone(DefaultStrandModes),
	}
}

// Validate checks the grid is non-empty, has no negative tolerance and no
// repeated entries.
func (c Config) Validate() error {
	switch {
	case len(c.Tolerances) == 0:
		return &ConfigError{Msg: "no tolerances configured"}
	case len(c.StrandModes) == 0:
		return &ConfigError{Msg: "no strand modes configured"}
	}
	for i, t := range c.Tolerances {
		if t < 0 {
			return &ConfigError{Msg: fmt.Sprintf("negative tolerance %d", t)}
		}
		if slices.Contains(c.Tolerances[:i], t) {
			return &ConfigError{Msg: fmt.Sprintf("tolerance %d listed more than once", t)}
		}
	}
	for i, s := range c.StrandModes {
		if slices.Contains(c.StrandModes[:i], s) {
			return &ConfigError{Msg: fmt.Sprintf("strand mode %v listed more than once", s)}
		}
	}
	return nil
}

// MaxTolerance returns the largest configured tolerance.
func (c Config) MaxTolerance() int {
	var ans int
	for _, t := range c.Tolerances {
		ans = max(ans, t)
	}
	return ans
}

// Run is one point of the parameter grid.
type Run struct {
	Tolerance       int
	StrandSensitive bool
}

func (r Run) String() string {
	return fmt.Sprintf("shift=%d strand=%v", r.Tolerance, r.StrandSensitive)
}

// Runs returns the cross product of tolerances and strand modes, tolerance-major.
func (c Config) Runs() []Run {
	ans := make([]Run, 0, len(c.Tolerances)*len(c.StrandModes))
	for _, t := range c.Tolerances {
		for _, s := range c.StrandModes {
			ans = append(ans, Run{Tolerance: t, StrandSensitive: s})
		}
	}
	return ans
}
