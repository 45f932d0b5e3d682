package selection

import (
	"fmt"
	"math"

	"bootcomp/internal/bootstrap"
	"bootcomp/internal/model"

	"github.com/montanaflynn/stats"
)

// Quality configures the indifference-zone filter. Tolerance is the
// fraction x of the best scenario's mean that still counts as "as good";
// Confidence is the fraction y of resamples that must fall inside it.
type Quality struct {
	Best       int
	Tolerance  float64
	Confidence float64
	Objective  Objective
}

func (q Quality) Validate(nscenarios int) error {
	if q.Best < 0 || q.Best >= nscenarios {
		return fmt.Errorf("%w: best scenario %d out of range [0,%d)", model.ErrInvalidArgument, q.Best, nscenarios)
	}
	if q.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be >= 0, got %g", model.ErrInvalidArgument, q.Tolerance)
	}
	if _, err := ParseObjective(string(q.Objective)); err != nil {
		return err
	}
	return checkFraction("confidence", q.Confidence)
}

type QualityResult struct {
	Best      int
	Threshold float64
	Screens   []Screen
	// Selected always contains Best, in scenario order with the others.
	Selected []int
}

// QualityFilter keeps the candidates whose replication-wise shortfall
// against the best scenario is, in at least Confidence of the bootstrap
// means, no larger than Tolerance * |mean(best)|. Shortfall is s - best
// when minimising and best - s when maximising. Every candidate must have
// as many replications as the best scenario.
func QualityFilter(rs *bootstrap.Resampler, sc model.Scenarios, candidates []int, q Quality) (*QualityResult, error) {
	if err := q.Validate(len(sc)); err != nil {
		return nil, err
	}
	cands, err := candidateSet(sc, candidates)
	if err != nil {
		return nil, err
	}
	labels := sc.Labels()
	best := sc[q.Best]
	if best.Len() == 0 {
		return nil, fmt.Errorf("%w: best scenario %s has no replications", model.ErrInsufficientData, labels[q.Best])
	}
	bv := best.Values()
	mean, err := stats.Mean(bv)
	if err != nil {
		return nil, err
	}

	res := &QualityResult{
		Best:      q.Best,
		Threshold: q.Tolerance * math.Abs(mean),
	}
	bestSeen := false
	diff := make([]float64, len(bv))
	for _, i := range cands {
		if i == q.Best {
			bestSeen = true
			res.Screens = append(res.Screens, Screen{Scenario: i, Label: labels[i], Proportion: 1, Passed: true, Reason: "apparent best"})
			res.Selected = append(res.Selected, i)
			continue
		}
		if sc[i].Len() != len(bv) {
			return nil, fmt.Errorf("%w: %s has %d replications, best %s has %d",
				model.ErrMisalignedScenarios, labels[i], sc[i].Len(), labels[q.Best], len(bv))
		}
		for r := range diff {
			if q.Objective == Maximize {
				diff[r] = bv[r] - sc[i].At(r)
			} else {
				diff[r] = sc[i].At(r) - bv[r]
			}
		}
		boots, err := rs.ResampleValues(diff, bootstrap.Mean)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", labels[i], err)
		}
		within := 0
		for _, d := range boots {
			if d <= res.Threshold {
				within++
			}
		}
		p := float64(within) / float64(len(boots))
		s := Screen{Scenario: i, Label: labels[i], Proportion: p, Passed: p >= q.Confidence}
		if s.Passed {
			res.Selected = append(res.Selected, i)
		} else {
			s.Reason = fmt.Sprintf("%.3f of resamples within %g of the best, need %.3f", p, res.Threshold, q.Confidence)
		}
		res.Screens = append(res.Screens, s)
	}
	if !bestSeen {
		res.Screens = append(res.Screens, Screen{Scenario: q.Best, Label: labels[q.Best], Proportion: 1, Passed: true, Reason: "apparent best"})
		res.Selected = insertSorted(res.Selected, q.Best)
	}
	return res, nil
}

func insertSorted(xs []int, v int) []int {
	i := 0
	for i < len(xs) && xs[i] < v {
		i++
	}
	xs = append(xs, 0)
	copy(xs[i+1:], xs[i:])
	xs[i] = v
	return xs
}
