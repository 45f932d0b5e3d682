package analysis

import (
	"fmt"
	"math"
	"sort"

	"bootcomp/internal/model"

	"github.com/montanaflynn/stats"
)

// Summary is a scenario-level description of the raw replications, shown
// next to comparison output so readers can sanity-check the inputs.
type Summary struct {
	Scenario int
	Label    string

	Count int

	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P05    float64
	P95    float64
}

// Describe summarises one replication set. StdDev is the sample standard
// deviation and is zero for a single replication.
func Describe(data model.ReplicationSet) (Summary, error) {
	s := Summary{Label: data.Label(), Count: data.Len()}
	if data.Len() == 0 {
		return s, fmt.Errorf("%w: scenario %q has no replications", model.ErrInsufficientData, data.Label())
	}
	vals := data.Values()
	sort.Float64s(vals)

	var err error
	if s.Mean, err = stats.Mean(vals); err != nil {
		return s, err
	}
	if len(vals) > 1 {
		if s.StdDev, err = stats.StandardDeviationSample(vals); err != nil {
			return s, err
		}
	}
	s.Min = vals[0]
	s.Max = vals[len(vals)-1]
	s.P05 = percentileSorted(vals, 0.05)
	s.P95 = percentileSorted(vals, 0.95)
	return s, nil
}

// DescribeAll summarises every scenario in order.
func DescribeAll(sc model.Scenarios) ([]Summary, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	labels := sc.Labels()
	out := make([]Summary, 0, len(sc))
	for i, data := range sc {
		s, err := Describe(data)
		if err != nil {
			return nil, err
		}
		s.Scenario = i + 1
		s.Label = labels[i]
		out = append(out, s)
	}
	return out, nil
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
