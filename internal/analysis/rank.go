package analysis

import (
	"fmt"
	"sort"
	"strings"

	"bootcomp/internal/model"
)

// Ranking is one line of a ranking table. Scenario is 1-based.
type Ranking struct {
	Scenario   int
	Label      string
	Frequency  int
	Proportion float64
}

// Rule picks which scenarios count as best in one bootstrap draw.
type Rule string

const (
	RuleMin       Rule = "min"
	RuleMax       Rule = "max"
	RuleMSmallest Rule = "msmallest"
	RuleMLargest  Rule = "mlargest"
)

func ParseRule(s string) (Rule, error) {
	switch r := Rule(strings.ToLower(strings.TrimSpace(s))); r {
	case RuleMin, RuleMax, RuleMSmallest, RuleMLargest:
		return r, nil
	case "":
		return RuleMin, nil
	}
	return "", fmt.Errorf("%w: unknown ranking rule %q", model.ErrInvalidArgument, s)
}

// Rank dispatches on rule. m is only read by the m-best rules.
func Rank(m model.ResampleMatrix, rule Rule, best int) ([]Ranking, error) {
	switch rule {
	case RuleMin:
		return RankMin(m)
	case RuleMax:
		return RankMax(m)
	case RuleMSmallest:
		return RankMSmallest(m, best)
	case RuleMLargest:
		return RankMLargest(m, best)
	}
	return nil, fmt.Errorf("%w: unknown ranking rule %q", model.ErrInvalidArgument, rule)
}

// RankMin tallies, per bootstrap draw, the scenario with the smallest point
// estimate. A tie goes to the lowest column index.
func RankMin(m model.ResampleMatrix) ([]Ranking, error) {
	return rankBest(m, func(a, b float64) bool { return a < b })
}

// RankMax is RankMin for the largest estimate.
func RankMax(m model.ResampleMatrix) ([]Ranking, error) {
	return rankBest(m, func(a, b float64) bool { return a > b })
}

// RankMSmallest tallies how often each scenario is among the best smallest
// estimates of a draw. Selection is a stable sort, so ties are broken by
// column index.
func RankMSmallest(m model.ResampleMatrix, best int) ([]Ranking, error) {
	return rankTopM(m, best, func(a, b float64) bool { return a < b })
}

func RankMLargest(m model.ResampleMatrix, best int) ([]Ranking, error) {
	return rankTopM(m, best, func(a, b float64) bool { return a > b })
}

func rankBest(m model.ResampleMatrix, better func(a, b float64) bool) ([]Ranking, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	freq := make([]int, m.NScenarios())
	for _, row := range m {
		win := 0
		for j := 1; j < len(row); j++ {
			if better(row[j], row[win]) {
				win = j
			}
		}
		freq[win]++
	}
	return table(freq, m.NBoots()), nil
}

func rankTopM(m model.ResampleMatrix, best int, better func(a, b float64) bool) ([]Ranking, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	k := m.NScenarios()
	if best < 1 || best > k {
		return nil, fmt.Errorf("%w: m must be in [1,%d], got %d", model.ErrInvalidArgument, k, best)
	}
	freq := make([]int, k)
	order := make([]int, k)
	for _, row := range m {
		for j := range order {
			order[j] = j
		}
		sort.SliceStable(order, func(a, b int) bool { return better(row[order[a]], row[order[b]]) })
		for _, j := range order[:best] {
			freq[j]++
		}
	}
	return table(freq, m.NBoots()), nil
}

// table lists scenarios that won at least once, by frequency descending and
// then by scenario.
func table(freq []int, nboots int) []Ranking {
	out := make([]Ranking, 0, len(freq))
	for j, f := range freq {
		if f == 0 {
			continue
		}
		out = append(out, Ranking{
			Scenario:   j + 1,
			Label:      model.ScenarioLabel(j),
			Frequency:  f,
			Proportion: float64(f) / float64(nboots),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Frequency > out[j].Frequency
	})
	return out
}

// WithLabels replaces the default S{n} labels with the given scenario labels.
func WithLabels(rankings []Ranking, labels []string) []Ranking {
	out := make([]Ranking, len(rankings))
	copy(out, rankings)
	for i := range out {
		if idx := out[i].Scenario - 1; idx >= 0 && idx < len(labels) && labels[idx] != "" {
			out[i].Label = labels[idx]
		}
	}
	return out
}
