package report

import (
	"bytes"
	"testing"

	"bootcomp/internal/analysis"
	"bootcomp/internal/bootstrap"
	"bootcomp/internal/comparison"
	"bootcomp/internal/selection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparison(t *testing.T) {
	m := comparison.ResultsToMatrix(comparison.Results{{comparison.ProbabilityCell(0.25)}, {}})
	require.NoError(t, m.InsertInverseResults(2))
	res := &comparison.Result{Labels: []string{"S1", "S2"}, Matrix: m, Summary: bootstrap.SummaryWinProbability}

	var buf bytes.Buffer
	require.NoError(t, Comparison(&buf, res, 2))
	out := buf.String()
	assert.Contains(t, out, "win_probability")
	assert.Contains(t, out, "0.25")
	assert.Contains(t, out, "0.75")
	assert.Contains(t, out, "-")
}

func TestRankingsAndSummaries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Rankings(&buf, analysis.RuleMin, []analysis.Ranking{{Scenario: 1, Label: "base", Frequency: 9, Proportion: 0.9}}, 2))
	require.NoError(t, Summaries(&buf, []analysis.Summary{{Label: "base", Count: 5, Mean: 3}}, 2))
	out := buf.String()
	assert.Contains(t, out, "Ranking (min)")
	assert.Contains(t, out, "0.90")
	assert.Contains(t, out, "3.00")
}

func TestAgainstEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Against(&buf, nil, 2))
	assert.Contains(t, buf.String(), "no comparisons")
}

func TestOutcome(t *testing.T) {
	p := &selection.Pipeline{
		Constraints: []selection.ConstraintStage{{KPI: "service", Constraint: selection.Constraint{Threshold: 0.9, Gamma: 0.8, Direction: selection.Lower}}},
		Quality:     selection.QualityStage{KPI: "cost", Tolerance: 0.1, Confidence: 0.9},
	}
	out := &selection.Outcome{
		Labels: []string{"S1", "S2"},
		Constraints: []*selection.ConstraintResult{{
			Screens:  []selection.Screen{{Scenario: 0, Label: "S1", Proportion: 1, Passed: true}, {Scenario: 1, Label: "S2", Proportion: 0.2, Reason: "too low"}},
			Feasible: []int{0},
		}},
		Feasible: []int{0},
		Best:     0,
		BestOf:   &selection.BestOfResult{Best: 0, KPIs: []string{"cost"}, Table: []selection.KPIMeans{{Scenario: 0, Label: "S1", Means: []float64{10}}}},
		Quality:  &selection.QualityResult{Best: 0, Threshold: 1, Selected: []int{0}},
		Selected: []int{0},
	}
	var buf bytes.Buffer
	require.NoError(t, Outcome(&buf, out, p, 2))
	s := buf.String()
	assert.Contains(t, s, "service >= 0.90")
	assert.Contains(t, s, "too low")
	assert.Contains(t, s, "Apparent best: S1")
	assert.Contains(t, s, "Selected: S1")
}
