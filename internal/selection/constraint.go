package selection

import (
	"fmt"

	"bootcomp/internal/bootstrap"
	"bootcomp/internal/model"
)

// Constraint is a chance constraint on one performance measure: a scenario
// is feasible when at least Gamma of its bootstrap estimates fall on the
// Direction side of Threshold.
type Constraint struct {
	Threshold float64
	Gamma     float64
	Direction Direction
}

func (c Constraint) Validate() error {
	if _, err := ParseDirection(string(c.Direction)); err != nil {
		return err
	}
	return checkFraction("gamma", c.Gamma)
}

func (c Constraint) satisfied(v float64) bool {
	if c.Direction == Upper {
		return v <= c.Threshold
	}
	return v >= c.Threshold
}

type ConstraintResult struct {
	Constraint Constraint
	Screens    []Screen
	// Feasible lists passing scenarios (0-based) in scenario order.
	Feasible []int
}

// Constraints screens candidates (nil means every scenario) against c.
// The constraint is validated before any resampling.
func Constraints(rs *bootstrap.Resampler, sc model.Scenarios, candidates []int, c Constraint) (*ConstraintResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cands, err := candidateSet(sc, candidates)
	if err != nil {
		return nil, err
	}
	labels := sc.Labels()

	res := &ConstraintResult{Constraint: c, Feasible: []int{}}
	for _, i := range cands {
		boots, err := rs.ResampleScenario(sc[i])
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", labels[i], err)
		}
		hits := 0
		for _, v := range boots {
			if c.satisfied(v) {
				hits++
			}
		}
		p := float64(hits) / float64(len(boots))
		s := Screen{Scenario: i, Label: labels[i], Proportion: p, Passed: p >= c.Gamma}
		if s.Passed {
			res.Feasible = append(res.Feasible, i)
		} else {
			s.Reason = fmt.Sprintf("%.3f of resamples satisfy %s bound %g, need %.3f", p, c.Direction, c.Threshold, c.Gamma)
		}
		res.Screens = append(res.Screens, s)
	}
	return res, nil
}
