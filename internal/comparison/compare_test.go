package comparison

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bootcomp/internal/bootstrap"
	"bootcomp/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, s bootstrap.Settings, nscenarios int, seed int64, opts ...Option) *Engine {
	t.Helper()
	cfg, err := bootstrap.NewConfig(s, nscenarios)
	require.NoError(t, err)
	e, err := New(bootstrap.NewResampler(cfg, rand.New(rand.NewSource(seed))), opts...)
	require.NoError(t, err)
	return e
}

func threeShifted() model.Scenarios {
	return model.Scenarios{
		model.MustReplicationSet("", 1, 2, 3, 4, 5),
		model.MustReplicationSet("", 2, 3, 4, 5, 6),
		model.MustReplicationSet("", 3, 4, 5, 6, 7),
	}
}

func TestProportions_SumToOneWithoutTies(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	diffs := make([]float64, 500)
	for i := range diffs {
		diffs[i] = rng.NormFloat64()
		if diffs[i] == 0 {
			diffs[i] = 1e-6
		}
	}
	gt, err := ProportionX2GreaterThanX1(diffs)
	require.NoError(t, err)
	lt, err := ProportionX2LessThanX1(diffs)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, gt+lt, 1e-12)
}

func TestProportions_Direction(t *testing.T) {
	// d = x1 - x2; negative means the comparator was larger
	diffs := []float64{-3, -2, -1, 4}
	gt, err := ProportionX2GreaterThanX1(diffs)
	require.NoError(t, err)
	assert.Equal(t, 0.75, gt)

	lt, err := ProportionX2LessThanX1(diffs)
	require.NoError(t, err)
	assert.Equal(t, 0.25, lt)
}

func TestProportions_TiesCountForNeither(t *testing.T) {
	diffs := []float64{0, 0, -1, 1}
	gt, _ := ProportionX2GreaterThanX1(diffs)
	lt, _ := ProportionX2LessThanX1(diffs)
	assert.Equal(t, 0.25, gt)
	assert.Equal(t, 0.25, lt)
}

func TestProportions_Empty(t *testing.T) {
	_, err := ProportionX2GreaterThanX1(nil)
	assert.ErrorIs(t, err, model.ErrInsufficientData)
}

func TestPercentileConfidenceInterval_KnownIndices(t *testing.T) {
	diffs := make([]float64, 100)
	for i := range diffs {
		diffs[i] = float64(i)
	}
	rand.New(rand.NewSource(3)).Shuffle(len(diffs), func(i, j int) { diffs[i], diffs[j] = diffs[j], diffs[i] })
	before := append([]float64(nil), diffs...)

	lo, hi, err := PercentileConfidenceInterval(diffs, 90)
	require.NoError(t, err)
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, 95.0, hi)

	lo, hi, err = PercentileConfidenceInterval(diffs, 95)
	require.NoError(t, err)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 97.0, hi)

	assert.Equal(t, before, diffs, "input must not be reordered")
}

func TestPercentileConfidenceInterval_UpperIndexClamped(t *testing.T) {
	lo, hi, err := PercentileConfidenceInterval([]float64{4}, 95)
	require.NoError(t, err)
	assert.Equal(t, 4.0, lo)
	assert.Equal(t, 4.0, hi)
}

func TestPercentileConfidenceInterval_Errors(t *testing.T) {
	_, _, err := PercentileConfidenceInterval(nil, 95)
	assert.ErrorIs(t, err, model.ErrInsufficientData)
	_, _, err = PercentileConfidenceInterval([]float64{1}, 100)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestPercentileInterval_WidensWithConfidence(t *testing.T) {
	a := model.MustReplicationSet("", 3, 9, 1, 7, 5, 2, 8)
	b := model.MustReplicationSet("", 4, 6, 2, 9, 3, 5, 1)
	s := bootstrap.Settings{NBoots: 500, Correction: bootstrap.CorrectionNone}

	s.Confidence = 90
	narrow, err := newTestEngine(t, s, 2, 21).CompareTwo(a, b)
	require.NoError(t, err)
	s.Confidence = 99
	wide, err := newTestEngine(t, s, 2, 21).CompareTwo(a, b)
	require.NoError(t, err)

	assert.LessOrEqual(t, wide.Lower, narrow.Lower)
	assert.GreaterOrEqual(t, wide.Upper, narrow.Upper)
}

func TestEngine_EndToEndWinProbability(t *testing.T) {
	sc := threeShifted()
	e := newTestEngine(t, bootstrap.Settings{NBoots: 1000, Confidence: 95, Summary: bootstrap.SummaryWinProbability}, 3, 1234)

	res, err := e.Run(sc)
	require.NoError(t, err)

	s1vs3 := res.Matrix.At(0, 2)
	require.Equal(t, Probability, s1vs3.Kind)
	// S3's mean exceeds S1's in nearly every resample
	assert.Greater(t, s1vs3.P, 0.9)
	assert.Less(t, res.Matrix.At(2, 0).P, 0.1)
	assert.Equal(t, 3, res.NComparisons)
	assert.Len(t, res.Ledger, 3)
}

func TestEngine_PairwiseIsJagged(t *testing.T) {
	sc := append(threeShifted(), model.MustReplicationSet("", 0, 1, 2))
	e := newTestEngine(t, bootstrap.Settings{NBoots: 50, Confidence: 95}, 4, 1)

	results, err := e.ComparePairwise(sc)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, row := range results {
		assert.Len(t, row, 3-i)
		for _, c := range row {
			assert.Equal(t, Interval, c.Kind)
			assert.LessOrEqual(t, c.Lower, c.Upper)
		}
	}
	assert.Equal(t, 6, results.Count())
}

func TestEngine_ObserverCalledPerBatch(t *testing.T) {
	var calls [][3]int
	obs := ObserverFunc(func(control, completed, total int) {
		calls = append(calls, [3]int{control, completed, total})
	})
	e := newTestEngine(t, bootstrap.Settings{NBoots: 20, Confidence: 95}, 3, 1, WithObserver(obs))

	_, err := e.ComparePairwise(threeShifted())
	require.NoError(t, err)
	assert.Equal(t, [][3]int{{0, 1, 2}, {1, 2, 2}}, calls)
}

func TestEngine_DependentRejectsMisaligned(t *testing.T) {
	sc := model.Scenarios{
		model.MustReplicationSet("", 1, 2, 3),
		model.MustReplicationSet("", 1, 2),
	}
	e := newTestEngine(t, bootstrap.Settings{NBoots: 20, Confidence: 95, Resampling: bootstrap.ResamplingDependent}, 2, 1)
	_, err := e.ComparePairwise(sc)
	assert.ErrorIs(t, err, model.ErrMisalignedScenarios)
}

func TestEngine_DependentConstantShiftIsDegenerate(t *testing.T) {
	// paired draws cancel a constant offset exactly
	sc := model.Scenarios{
		model.MustReplicationSet("", 5, 1, 9, 3, 7),
		model.MustReplicationSet("", 7, 3, 11, 5, 9),
	}
	e := newTestEngine(t, bootstrap.Settings{NBoots: 200, Confidence: 95, Resampling: bootstrap.ResamplingDependent}, 2, 8)
	c, err := e.CompareTwo(sc[0], sc[1])
	require.NoError(t, err)
	assert.InDelta(t, -2.0, c.Lower, 1e-9)
	assert.InDelta(t, -2.0, c.Upper, 1e-9)
}

func TestEngine_EmptyScenario(t *testing.T) {
	sc := model.Scenarios{model.MustReplicationSet("", 1, 2), model.MustReplicationSet("")}
	e := newTestEngine(t, bootstrap.Settings{NBoots: 20, Confidence: 95}, 2, 1)
	_, err := e.Run(sc)
	assert.ErrorIs(t, err, model.ErrInsufficientData)
}

func TestEngine_CompareResampled(t *testing.T) {
	e := newTestEngine(t, bootstrap.Settings{NBoots: 4, Confidence: 95, Summary: bootstrap.SummaryWinProbability}, 2, 1)
	c, err := e.CompareResampled([]float64{1, 2, 3, 4}, []float64{2, 1, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.75, c.P)

	_, err = e.CompareResampled([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestEngine_CompareAgainst(t *testing.T) {
	sc := threeShifted()
	e := newTestEngine(t, bootstrap.Settings{NBoots: 100, Confidence: 95, Design: bootstrap.DesignListwise}, 3, 4)

	rows, err := e.CompareAgainst(sc, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Comparator)
	assert.Equal(t, 2, rows[1].Comparator)
	assert.Equal(t, "S2", rows[0].ControlLabel)

	_, err = e.CompareAgainst(sc, 3)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestInsertInverseResults(t *testing.T) {
	results := Results{
		{ProbabilityCell(0.123), ProbabilityCell(0.9)},
		{ProbabilityCell(0.456)},
		{},
	}
	m := ResultsToMatrix(results)
	require.Equal(t, 4, m.Size())
	require.NoError(t, m.InsertInverseResults(2))

	for i := 0; i < m.Size(); i++ {
		for j := i + 1; j < m.Size(); j++ {
			up := m.At(i, j)
			if !up.Applicable() {
				assert.False(t, m.At(j, i).Applicable())
				continue
			}
			assert.InDelta(t, Round(1-up.P, 2), m.At(j, i).P, 1e-12)
		}
	}
	assert.Equal(t, 0.12, m.At(0, 1).P)
	assert.InDelta(t, 0.88, m.At(1, 0).P, 1e-12)
	assert.False(t, m.At(3, 3).Applicable())
	assert.False(t, m.At(0, 3).Applicable())
}

func TestInsertInverseResults_RejectsIntervals(t *testing.T) {
	m := ResultsToMatrix(Results{{IntervalCell(-1, 1)}, {}})
	assert.ErrorIs(t, m.InsertInverseResults(2), model.ErrInvalidArgument)
}

func TestCellFormat(t *testing.T) {
	assert.Equal(t, "-", Cell{}.Format(2))
	assert.Equal(t, "[-1.23, 4.50]", IntervalCell(-1.234, 4.5).Format(2))
	assert.Equal(t, "0.57", ProbabilityCell(0.5678).Format(2))
	assert.Equal(t, "0.5678", ProbabilityCell(0.5678).Format(-1))
}

func TestWriteMatrix(t *testing.T) {
	m := ResultsToMatrix(Results{{ProbabilityCell(0.25)}, {}})
	require.NoError(t, m.InsertInverseResults(2))

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m, []string{"S1", "S2"}, 2))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{",S1,S2", "S1,-,0.25", "S2,0.75,-"}, lines)
}

func TestWriteLongFormat(t *testing.T) {
	results := Results{{IntervalCell(-1, 2), IntervalCell(0.5, 3)}, {IntervalCell(1, 1)}, {}}
	var buf bytes.Buffer
	require.NoError(t, WriteLongFormat(&buf, results, []string{"S1", "S2", "S3"}, 1))
	assert.Equal(t, "Scenario S1\nVs. S2: [-1.0, 2.0]\nVs. S3: [0.5, 3.0]\nScenario S2\nVs. S3: [1.0, 1.0]\n", buf.String())
}

func TestWriteLedgerCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	rows := LedgerFromResults(Results{{ProbabilityCell(0.8)}, {}}, []string{"A", "B"})
	require.NoError(t, WriteLedgerCSV(path, rows, 2))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "control,comparator,control_label,comparator_label,lower,upper,probability\n1,2,A,B,,,0.80\n", string(raw))
}
