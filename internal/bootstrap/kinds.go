package bootstrap

import (
	"fmt"
	"strings"

	"bootcomp/internal/model"
)

// EstimatorKind selects the point estimate reduced from each resample.
type EstimatorKind string

const (
	EstimatorMean     EstimatorKind = "mean"
	EstimatorVariance EstimatorKind = "variance"
)

// SummaryKind selects how a distribution of bootstrap differences is summarised.
type SummaryKind string

const (
	SummaryPercentileCI   SummaryKind = "percentile_ci"
	SummaryWinProbability SummaryKind = "win_probability"
)

// ResamplingKind selects independent or dependent (common random numbers) resampling.
type ResamplingKind string

const (
	ResamplingIndependent ResamplingKind = "independent"
	ResamplingDependent   ResamplingKind = "dependent"
)

// Correction is the multiple-comparison policy applied when the Config is built.
type Correction string

const (
	CorrectionNone       Correction = "none"
	CorrectionBonferroni Correction = "bonferroni"
)

// Design determines how many simultaneous comparisons a run makes.
// Pairwise compares every scenario with every other; listwise compares one
// control against the rest.
type Design string

const (
	DesignPairwise Design = "pairwise"
	DesignListwise Design = "listwise"
)

// Mode selects single-goroutine or parallel per-scenario resampling.
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeParallel Mode = "parallel"
)

func ParseEstimatorKind(s string) (EstimatorKind, error) {
	switch k := EstimatorKind(normalize(s)); k {
	case EstimatorMean, EstimatorVariance:
		return k, nil
	case "":
		return EstimatorMean, nil
	}
	return "", fmt.Errorf("%w: estimator must be mean or variance, got %q", model.ErrInvalidArgument, s)
}

func ParseSummaryKind(s string) (SummaryKind, error) {
	switch k := SummaryKind(normalize(s)); k {
	case SummaryPercentileCI, SummaryWinProbability:
		return k, nil
	case "ci", "percentile":
		return SummaryPercentileCI, nil
	case "probability", "win":
		return SummaryWinProbability, nil
	case "":
		return SummaryPercentileCI, nil
	}
	return "", fmt.Errorf("%w: summary must be percentile_ci or win_probability, got %q", model.ErrInvalidArgument, s)
}

func ParseResamplingKind(s string) (ResamplingKind, error) {
	switch k := ResamplingKind(normalize(s)); k {
	case ResamplingIndependent, ResamplingDependent:
		return k, nil
	case "block", "crn":
		return ResamplingDependent, nil
	case "":
		return ResamplingIndependent, nil
	}
	return "", fmt.Errorf("%w: resampling must be independent or dependent, got %q", model.ErrInvalidArgument, s)
}

func ParseCorrection(s string) (Correction, error) {
	switch c := Correction(normalize(s)); c {
	case CorrectionNone, CorrectionBonferroni:
		return c, nil
	case "":
		return CorrectionBonferroni, nil
	}
	return "", fmt.Errorf("%w: correction must be none or bonferroni, got %q", model.ErrInvalidArgument, s)
}

func ParseDesign(s string) (Design, error) {
	switch d := Design(normalize(s)); d {
	case DesignPairwise, DesignListwise:
		return d, nil
	case "":
		return DesignPairwise, nil
	}
	return "", fmt.Errorf("%w: design must be pairwise or listwise, got %q", model.ErrInvalidArgument, s)
}

// ParseMode also accepts the single-letter forms s and p.
func ParseMode(s string) (Mode, error) {
	switch normalize(s) {
	case "single", "s", "":
		return ModeSingle, nil
	case "parallel", "p":
		return ModeParallel, nil
	}
	return "", fmt.Errorf("%w: mode must be single or parallel, got %q", model.ErrInvalidArgument, s)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
