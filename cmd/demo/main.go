package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"bootcomp/internal/analysis"
	"bootcomp/internal/bootstrap"
	"bootcomp/internal/comparison"
	"bootcomp/internal/model"
	"bootcomp/internal/report"
	"bootcomp/internal/selection"
)

// Demo:
// - Simulate three scenarios of a toy queueing model (wait time and service level)
// - Compare them pairwise with both summaries
// - Rank them and run the constraint + indifference-zone pipeline
func main() {
	reps := flag.Int("n", 30, "Replications per scenario")
	nboots := flag.Int("nboots", 1000, "Bootstrap draws")
	seed := flag.Int64("seed", 42, "Random seed")
	outCSV := flag.String("out", "", "Optional path to write the comparison matrix CSV")
	flag.Parse()

	gen := rand.New(rand.NewSource(*seed))
	// Means chosen so that S1 has the lowest wait and S3 the highest service level.
	waitMeans := []float64{10, 12, 15}
	serviceMeans := []float64{0.82, 0.90, 0.97}
	wait := make(model.Scenarios, len(waitMeans))
	service := make(model.Scenarios, len(serviceMeans))
	for i := range waitMeans {
		w := make([]float64, *reps)
		s := make([]float64, *reps)
		for r := 0; r < *reps; r++ {
			w[r] = waitMeans[i] + gen.NormFloat64()*2
			s[r] = serviceMeans[i] + gen.NormFloat64()*0.02
		}
		wait[i] = model.MustReplicationSet(model.ScenarioLabel(i), w...)
		service[i] = model.MustReplicationSet(model.ScenarioLabel(i), s...)
	}

	must := func(err error) {
		if err != nil {
			fmt.Fprintln(os.Stderr, "demo:", err)
			os.Exit(1)
		}
	}
	newResampler := func(s bootstrap.Settings) *bootstrap.Resampler {
		cfg, err := bootstrap.NewConfig(s, len(wait))
		must(err)
		return bootstrap.NewResampler(cfg, rand.New(rand.NewSource(*seed)))
	}

	sums, err := analysis.DescribeAll(wait)
	must(err)
	must(report.Summaries(os.Stdout, sums, 2))

	for _, kind := range []bootstrap.SummaryKind{bootstrap.SummaryPercentileCI, bootstrap.SummaryWinProbability} {
		eng, err := comparison.New(newResampler(bootstrap.Settings{NBoots: *nboots, Confidence: 95, Summary: kind}), comparison.WithDecimals(3))
		must(err)
		res, err := eng.Run(wait)
		must(err)
		must(report.Comparison(os.Stdout, res, 3))
		if *outCSV != "" && kind == bootstrap.SummaryWinProbability {
			must(os.MkdirAll(filepath.Dir(*outCSV), 0o755))
			must(comparison.WriteMatrixCSV(*outCSV, res.Matrix, res.Labels, 3))
			fmt.Printf("Wrote %s\n", *outCSV)
		}
	}

	rs := newResampler(bootstrap.Settings{NBoots: *nboots, Confidence: 95})
	m, err := rs.Resample(wait)
	must(err)
	ranked, err := analysis.RankMin(m)
	must(err)
	must(report.Rankings(os.Stdout, analysis.RuleMin, analysis.WithLabels(ranked, wait.Labels()), 3))

	checks, err := bootstrap.VarianceReduction(wait)
	must(err)
	must(report.VarianceChecks(os.Stdout, checks, wait.Labels(), 3))

	p := &selection.Pipeline{
		KPIs: []selection.KPI{
			{Name: "service", Data: service, Objective: selection.Maximize},
			{Name: "wait", Data: wait, Objective: selection.Minimize},
		},
		Constraints: []selection.ConstraintStage{
			{KPI: "service", Constraint: selection.Constraint{Threshold: 0.85, Gamma: 0.9, Direction: selection.Lower}},
		},
		Quality: selection.QualityStage{KPI: "wait", Tolerance: 0.1, Confidence: 0.8, Objective: selection.Minimize},
	}
	out, err := p.Run(rs)
	must(err)
	must(report.Outcome(os.Stdout, out, p, 3))
}
