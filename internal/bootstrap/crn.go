package bootstrap

import (
	"bootcomp/internal/model"

	"github.com/montanaflynn/stats"
)

// VarianceCheck compares adjacent scenarios First and First+1 (0-based).
type VarianceCheck struct {
	First                int
	Second               int
	SumOfVariances       float64
	VarianceOfDifference float64
	// Reduced reports whether common random numbers induced a positive
	// dependency: var(X2-X1) < var(X1) + var(X2).
	Reduced bool
}

// VarianceReduction checks, for every adjacent pair of index-aligned
// scenarios, whether common random numbers reduced the variance of the
// replication-level differences. Dependent resampling only pays off when
// they did.
func VarianceReduction(sc model.Scenarios) ([]VarianceCheck, error) {
	if err := sc.Aligned(); err != nil {
		return nil, err
	}
	vars := make([]float64, len(sc))
	for i, data := range sc {
		v, err := stats.PopulationVariance(data.Values())
		if err != nil {
			return nil, err
		}
		vars[i] = v
	}

	out := make([]VarianceCheck, 0, len(sc)-1)
	diff := make([]float64, sc[0].Len())
	for i := 0; i+1 < len(sc); i++ {
		for r := range diff {
			diff[r] = sc[i+1].At(r) - sc[i].At(r)
		}
		vd, err := stats.PopulationVariance(diff)
		if err != nil {
			return nil, err
		}
		sum := vars[i] + vars[i+1]
		out = append(out, VarianceCheck{
			First:                i,
			Second:               i + 1,
			SumOfVariances:       sum,
			VarianceOfDifference: vd,
			Reduced:              vd < sum,
		})
	}
	return out, nil
}
