package comparison

import (
	"fmt"
	"math"
	"sort"

	"bootcomp/internal/bootstrap"
	"bootcomp/internal/model"
)

// Sign convention: every difference in this package is control minus
// comparator, d = x1 - x2, where x1 is the first (control) scenario's
// bootstrap estimate and x2 the second's. A negative d therefore means the
// comparator's estimate exceeded the control's.

// IndependentDifferences resamples a and b with independent index draws
// (a first, then b) and returns the elementwise differences of their nboots
// point estimates.
func IndependentDifferences(rs *bootstrap.Resampler, a, b model.ReplicationSet) ([]float64, error) {
	sa, err := rs.ResampleScenario(a)
	if err != nil {
		return nil, err
	}
	sb, err := rs.ResampleScenario(b)
	if err != nil {
		return nil, err
	}
	return ElementwiseDifferences(sa, sb)
}

// DependentDifferences draws one set of replication indices per bootstrap
// iteration and applies it to both a and b, so the pairing induced by common
// random numbers survives resampling.
func DependentDifferences(rs *bootstrap.Resampler, a, b model.ReplicationSet) ([]float64, error) {
	n := a.Len()
	if n == 0 || b.Len() == 0 {
		return nil, fmt.Errorf("%w: cannot compare an empty scenario", model.ErrInsufficientData)
	}
	if b.Len() != n {
		return nil, fmt.Errorf("%w: %d vs %d replications", model.ErrMisalignedScenarios, n, b.Len())
	}

	cfg := rs.Config()
	est := cfg.Estimator()
	av, bv := a.Values(), b.Values()
	idx := make([]int, n)
	sa := make([]float64, n)
	sb := make([]float64, n)
	out := make([]float64, cfg.NBoots())
	for i := range out {
		rs.DrawIndices(n, idx)
		for k, j := range idx {
			sa[k] = av[j]
			sb[k] = bv[j]
		}
		ea, err := est.Estimate(sa)
		if err != nil {
			return nil, err
		}
		eb, err := est.Estimate(sb)
		if err != nil {
			return nil, err
		}
		out[i] = ea - eb
	}
	return out, nil
}

// ElementwiseDifferences pairs two precomputed resample sequences by
// position (not all-pairs) and returns a[i] - b[i].
func ElementwiseDifferences(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: resample sequences of length %d and %d", model.ErrInvalidArgument, len(a), len(b))
	}
	if len(a) == 0 {
		return nil, fmt.Errorf("%w: empty resample sequences", model.ErrInsufficientData)
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out, nil
}

// PercentileConfidenceInterval returns the empirical percentile interval of
// diffs at confidence (0-100): with alpha = 1 - confidence/100 and n values in
// ascending order, the bounds are d[floor(alpha/2*n)] and
// d[floor((1-alpha/2)*n)], the upper index capped at n-1. diffs is not
// modified.
func PercentileConfidenceInterval(diffs []float64, confidence float64) (lower, upper float64, err error) {
	n := len(diffs)
	if n == 0 {
		return 0, 0, fmt.Errorf("%w: no bootstrap differences", model.ErrInsufficientData)
	}
	if confidence <= 0 || confidence >= 100 {
		return 0, 0, fmt.Errorf("%w: confidence must be in (0, 100), got %g", model.ErrInvalidArgument, confidence)
	}
	sorted := make([]float64, n)
	copy(sorted, diffs)
	sort.Float64s(sorted)

	alpha := (100.0 - confidence) / 100.0
	lo := percentileIndex(alpha/2, n)
	hi := percentileIndex(1-alpha/2, n)
	return sorted[lo], sorted[hi], nil
}

// percentileIndex is floor(q*n) clamped to [0, n-1]. The 1e-9 slack keeps
// products such as 0.05*100 from landing on 4.999... .
func percentileIndex(q float64, n int) int {
	i := int(math.Floor(q*float64(n) + 1e-9))
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// ProportionX2GreaterThanX1 is the win probability of the comparator: the
// fraction of differences d = x1 - x2 with d < 0, i.e. draws where the
// second scenario's estimate exceeded the control's.
func ProportionX2GreaterThanX1(diffs []float64) (float64, error) {
	return proportion(diffs, func(d float64) bool { return d < 0 })
}

// ProportionX2LessThanX1 is the complement with a strict inequality: the
// fraction of differences with d > 0. Ties (d == 0) count for neither side.
func ProportionX2LessThanX1(diffs []float64) (float64, error) {
	return proportion(diffs, func(d float64) bool { return d > 0 })
}

func proportion(diffs []float64, pred func(float64) bool) (float64, error) {
	if len(diffs) == 0 {
		return 0, fmt.Errorf("%w: no bootstrap differences", model.ErrInsufficientData)
	}
	count := 0
	for _, d := range diffs {
		if pred(d) {
			count++
		}
	}
	return float64(count) / float64(len(diffs)), nil
}

// Summarizer reduces a distribution of bootstrap differences to a Cell.
type Summarizer interface {
	Kind() bootstrap.SummaryKind
	Summarize(diffs []float64) (Cell, error)
}

// PercentileSummary summarises with a percentile interval at an already
// corrected confidence level.
type PercentileSummary struct {
	Confidence float64
}

func (PercentileSummary) Kind() bootstrap.SummaryKind { return bootstrap.SummaryPercentileCI }

func (s PercentileSummary) Summarize(diffs []float64) (Cell, error) {
	lo, hi, err := PercentileConfidenceInterval(diffs, s.Confidence)
	if err != nil {
		return Cell{}, err
	}
	return IntervalCell(lo, hi), nil
}

// WinProbabilitySummary summarises with ProportionX2GreaterThanX1.
type WinProbabilitySummary struct{}

func (WinProbabilitySummary) Kind() bootstrap.SummaryKind { return bootstrap.SummaryWinProbability }

func (WinProbabilitySummary) Summarize(diffs []float64) (Cell, error) {
	p, err := ProportionX2GreaterThanX1(diffs)
	if err != nil {
		return Cell{}, err
	}
	return ProbabilityCell(p), nil
}

// SummarizerFor builds the summary variant cfg selects. Percentile intervals
// use cfg.AdjustedConfidence: correction happens when the Config is built,
// never here.
func SummarizerFor(cfg *bootstrap.Config) (Summarizer, error) {
	switch cfg.Summary() {
	case bootstrap.SummaryPercentileCI:
		return PercentileSummary{Confidence: cfg.AdjustedConfidence()}, nil
	case bootstrap.SummaryWinProbability:
		return WinProbabilitySummary{}, nil
	}
	return nil, fmt.Errorf("%w: unknown summary %q", model.ErrInvalidArgument, cfg.Summary())
}
