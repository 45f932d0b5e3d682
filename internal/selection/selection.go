// Package selection narrows a set of scenarios down to a recommended subset:
// chance-constraint screening first, then an indifference-zone quality
// filter against the apparent best scenario.
package selection

import (
	"fmt"
	"sort"
	"strings"

	"bootcomp/internal/model"
)

// Direction says which side of a chance constraint's threshold is feasible.
type Direction string

const (
	// Lower bounds the performance measure from below: feasible resamples
	// are >= threshold.
	Lower Direction = "lower"
	// Upper bounds it from above: feasible resamples are <= threshold.
	Upper Direction = "upper"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Lower, Upper:
		return d, nil
	}
	return "", fmt.Errorf("%w: direction must be lower or upper, got %q", model.ErrInvalidArgument, s)
}

// Objective says whether smaller or larger values of a KPI are better.
type Objective string

const (
	Minimize Objective = "min"
	Maximize Objective = "max"
)

func ParseObjective(s string) (Objective, error) {
	switch o := Objective(strings.ToLower(strings.TrimSpace(s))); o {
	case Minimize, Maximize:
		return o, nil
	case "":
		return Minimize, nil
	}
	return "", fmt.Errorf("%w: objective must be min or max, got %q", model.ErrInvalidArgument, s)
}

// Screen is one scenario's outcome in a stage.
type Screen struct {
	Scenario   int
	Label      string
	Proportion float64
	Passed     bool
	Reason     string
}

func candidateSet(sc model.Scenarios, candidates []int) ([]int, error) {
	if candidates == nil {
		return sc.AllIndices(), nil
	}
	out := make([]int, 0, len(candidates))
	seen := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		if c < 0 || c >= len(sc) {
			return nil, fmt.Errorf("%w: candidate %d out of range [0,%d)", model.ErrInvalidArgument, c, len(sc))
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Ints(out)
	return out, nil
}

func checkFraction(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be in [0,1], got %g", model.ErrInvalidArgument, name, v)
	}
	return nil
}
