package bootstrap

import (
	"fmt"
	"runtime"

	"bootcomp/internal/model"
)

// Settings is the user-facing description of a bootstrap run.
// Empty tag fields take their documented defaults in NewConfig.
type Settings struct {
	NBoots     int
	Confidence float64 // 0-100, before any multiple-comparison correction
	Correction Correction
	Design     Design
	Estimator  EstimatorKind
	Summary    SummaryKind
	Resampling ResamplingKind
	Mode       Mode
	Workers    int // parallel mode only; 0 = GOMAXPROCS
}

// Config is the validated, immutable configuration of one run. It is built
// once by NewConfig and shared read-only by every entry point.
type Config struct {
	settings           Settings
	nscenarios         int
	ncomparisons       int
	adjustedConfidence float64
	estimator          Estimator
}

// NewConfig validates s for a run over nscenarios scenarios and derives the
// number of comparisons and the corrected confidence level.
func NewConfig(s Settings, nscenarios int) (*Config, error) {
	if s.NBoots <= 0 {
		return nil, fmt.Errorf("%w: nboots must be > 0", model.ErrInvalidArgument)
	}
	if s.Confidence <= 0 || s.Confidence >= 100 {
		return nil, fmt.Errorf("%w: confidence must be in (0, 100), got %g", model.ErrInvalidArgument, s.Confidence)
	}
	if nscenarios <= 0 {
		return nil, fmt.Errorf("%w: at least one scenario is required", model.ErrInsufficientData)
	}
	if s.Workers < 0 {
		return nil, fmt.Errorf("%w: workers must be >= 0", model.ErrInvalidArgument)
	}

	var err error
	if s.Correction, err = ParseCorrection(string(s.Correction)); err != nil {
		return nil, err
	}
	if s.Design, err = ParseDesign(string(s.Design)); err != nil {
		return nil, err
	}
	if s.Estimator, err = ParseEstimatorKind(string(s.Estimator)); err != nil {
		return nil, err
	}
	if s.Summary, err = ParseSummaryKind(string(s.Summary)); err != nil {
		return nil, err
	}
	if s.Resampling, err = ParseResamplingKind(string(s.Resampling)); err != nil {
		return nil, err
	}
	if s.Mode, err = ParseMode(string(s.Mode)); err != nil {
		return nil, err
	}
	if s.Workers == 0 {
		s.Workers = runtime.GOMAXPROCS(0)
	}

	est, err := EstimatorFor(s.Estimator)
	if err != nil {
		return nil, err
	}

	c := &Config{
		settings:   s,
		nscenarios: nscenarios,
		estimator:  est,
	}
	switch s.Design {
	case DesignListwise:
		c.ncomparisons = ListwiseComparisonsCount(nscenarios)
	default:
		c.ncomparisons = PairwiseComparisonsCount(nscenarios)
	}
	c.adjustedConfidence = s.Confidence
	if s.Correction == CorrectionBonferroni {
		c.adjustedConfidence = BonferroniAdjustedConfidence(s.Confidence, c.ncomparisons)
	}
	return c, nil
}

// Settings returns a copy of the normalised settings the Config was built from.
func (c *Config) Settings() Settings { return c.settings }

func (c *Config) NBoots() int { return c.settings.NBoots }

// Confidence is the requested confidence level before correction.
func (c *Config) Confidence() float64 { return c.settings.Confidence }

// AdjustedConfidence is the level percentile intervals must be computed at.
func (c *Config) AdjustedConfidence() float64 { return c.adjustedConfidence }

func (c *Config) NScenarios() int { return c.nscenarios }

func (c *Config) NComparisons() int { return c.ncomparisons }

func (c *Config) Correction() Correction { return c.settings.Correction }

func (c *Config) Design() Design { return c.settings.Design }

func (c *Config) Estimator() Estimator { return c.estimator }

func (c *Config) Summary() SummaryKind { return c.settings.Summary }

func (c *Config) Resampling() ResamplingKind { return c.settings.Resampling }

func (c *Config) Mode() Mode { return c.settings.Mode }

func (c *Config) Workers() int { return c.settings.Workers }
