package bootstrap

import (
	"testing"

	"bootcomp/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(Settings{NBoots: 100, Confidence: 95}, 4)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.NBoots())
	assert.Equal(t, 4, cfg.NScenarios())
	assert.Equal(t, 6, cfg.NComparisons())
	assert.Equal(t, CorrectionBonferroni, cfg.Correction())
	assert.Equal(t, DesignPairwise, cfg.Design())
	assert.Equal(t, EstimatorMean, cfg.Estimator().Kind())
	assert.Equal(t, SummaryPercentileCI, cfg.Summary())
	assert.Equal(t, ResamplingIndependent, cfg.Resampling())
	assert.Equal(t, ModeSingle, cfg.Mode())
	assert.Greater(t, cfg.Workers(), 0)
	assert.InDelta(t, 100*(1-0.05/6), cfg.AdjustedConfidence(), 1e-9)
}

func TestNewConfig_ListwiseDesign(t *testing.T) {
	cfg, err := NewConfig(Settings{NBoots: 100, Confidence: 95, Design: DesignListwise}, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.NComparisons())
	assert.InDelta(t, 100*(1-0.05/3), cfg.AdjustedConfidence(), 1e-9)
}

func TestNewConfig_NoCorrection(t *testing.T) {
	cfg, err := NewConfig(Settings{NBoots: 100, Confidence: 90, Correction: CorrectionNone}, 5)
	require.NoError(t, err)
	assert.Equal(t, 90.0, cfg.AdjustedConfidence())
	assert.Equal(t, 90.0, cfg.Confidence())
}

func TestNewConfig_Invalid(t *testing.T) {
	cases := []struct {
		name string
		s    Settings
		n    int
	}{
		{"zero boots", Settings{NBoots: 0, Confidence: 95}, 2},
		{"confidence 100", Settings{NBoots: 10, Confidence: 100}, 2},
		{"confidence 0", Settings{NBoots: 10, Confidence: 0}, 2},
		{"no scenarios", Settings{NBoots: 10, Confidence: 95}, 0},
		{"bad summary", Settings{NBoots: 10, Confidence: 95, Summary: "median"}, 2},
		{"bad resampling", Settings{NBoots: 10, Confidence: 95, Resampling: "jackknife"}, 2},
		{"bad estimator", Settings{NBoots: 10, Confidence: 95, Estimator: "mode"}, 2},
		{"bad mode", Settings{NBoots: 10, Confidence: 95, Mode: "gpu"}, 2},
		{"negative workers", Settings{NBoots: 10, Confidence: 95, Workers: -1}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.s, tc.n)
			assert.Error(t, err)
		})
	}
}

func TestNewConfig_TagErrorsAreInvalidArgument(t *testing.T) {
	_, err := NewConfig(Settings{NBoots: 10, Confidence: 95, Summary: "median"}, 2)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestParseAliases(t *testing.T) {
	m, err := ParseMode("P")
	require.NoError(t, err)
	assert.Equal(t, ModeParallel, m)

	r, err := ParseResamplingKind("crn")
	require.NoError(t, err)
	assert.Equal(t, ResamplingDependent, r)

	s, err := ParseSummaryKind(" Win_Probability ")
	require.NoError(t, err)
	assert.Equal(t, SummaryWinProbability, s)
}

func TestBonferroni(t *testing.T) {
	assert.Equal(t, 3, PairwiseComparisonsCount(3))
	assert.Equal(t, 15576, PairwiseComparisonsCount(177))
	assert.Equal(t, 0, PairwiseComparisonsCount(1))
	assert.Equal(t, 2, ListwiseComparisonsCount(3))

	assert.InDelta(t, 98.3333333, BonferroniAdjustedConfidence(95, 3), 1e-6)
	assert.Equal(t, 95.0, BonferroniAdjustedConfidence(95, 1))
	assert.Equal(t, 95.0, BonferroniAdjustedConfidence(95, 0))
}

func TestEstimators(t *testing.T) {
	m, err := Mean.Estimate([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, m, 1e-12)

	v, err := Variance.Estimate([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 1.25, v, 1e-12)

	_, err = Mean.Estimate(nil)
	assert.ErrorIs(t, err, model.ErrInsufficientData)
	_, err = Variance.Estimate(nil)
	assert.ErrorIs(t, err, model.ErrInsufficientData)

	_, err = EstimatorFor("mode")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestVarianceReduction(t *testing.T) {
	sc := model.Scenarios{
		model.MustReplicationSet("", 1, 2, 3, 4, 5),
		model.MustReplicationSet("", 2, 3, 4, 5, 6),
		model.MustReplicationSet("", 5, 4, 3, 2, 1),
	}
	checks, err := VarianceReduction(sc)
	require.NoError(t, err)
	require.Len(t, checks, 2)

	assert.Equal(t, 0, checks[0].First)
	assert.Equal(t, 1, checks[0].Second)
	assert.InDelta(t, 4.0, checks[0].SumOfVariances, 1e-12)
	assert.InDelta(t, 0.0, checks[0].VarianceOfDifference, 1e-12)
	assert.True(t, checks[0].Reduced)

	assert.InDelta(t, 4.0, checks[1].SumOfVariances, 1e-12)
	assert.InDelta(t, 8.0, checks[1].VarianceOfDifference, 1e-12)
	assert.False(t, checks[1].Reduced)
}

func TestVarianceReduction_Misaligned(t *testing.T) {
	sc := model.Scenarios{
		model.MustReplicationSet("", 1, 2, 3),
		model.MustReplicationSet("", 1, 2),
	}
	_, err := VarianceReduction(sc)
	assert.ErrorIs(t, err, model.ErrMisalignedScenarios)
}
