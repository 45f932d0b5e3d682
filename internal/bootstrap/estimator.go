package bootstrap

import (
	"fmt"

	"bootcomp/internal/model"

	"github.com/montanaflynn/stats"
)

// Estimator reduces one bootstrap sample to a point estimate.
type Estimator interface {
	Kind() EstimatorKind
	Estimate(sample []float64) (float64, error)
}

var (
	// Mean is the arithmetic mean estimator.
	Mean Estimator = meanEstimator{}
	// Variance is the population variance estimator.
	Variance Estimator = varianceEstimator{}
)

// EstimatorFor returns the named estimator variant.
func EstimatorFor(kind EstimatorKind) (Estimator, error) {
	switch kind {
	case EstimatorMean:
		return Mean, nil
	case EstimatorVariance:
		return Variance, nil
	}
	return nil, fmt.Errorf("%w: unknown estimator %q", model.ErrInvalidArgument, kind)
}

type meanEstimator struct{}

func (meanEstimator) Kind() EstimatorKind { return EstimatorMean }

func (meanEstimator) Estimate(sample []float64) (float64, error) {
	if len(sample) == 0 {
		return 0, fmt.Errorf("%w: mean of empty sample", model.ErrInsufficientData)
	}
	return stats.Mean(sample)
}

type varianceEstimator struct{}

func (varianceEstimator) Kind() EstimatorKind { return EstimatorVariance }

func (varianceEstimator) Estimate(sample []float64) (float64, error) {
	if len(sample) == 0 {
		return 0, fmt.Errorf("%w: variance of empty sample", model.ErrInsufficientData)
	}
	return stats.PopulationVariance(sample)
}
