package comparison

import (
	"fmt"

	"bootcomp/internal/bootstrap"
	"bootcomp/internal/model"
)

// Observer is told when each control scenario's listwise batch finishes
// during a pairwise run. completed counts batches done out of total.
type Observer interface {
	ListwiseComplete(control, completed, total int)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(control, completed, total int)

func (f ObserverFunc) ListwiseComplete(control, completed, total int) { f(control, completed, total) }

type differenceFunc func(rs *bootstrap.Resampler, a, b model.ReplicationSet) ([]float64, error)

// Engine runs bootstrap comparisons between scenarios. The Resampler's
// Config selects the estimator, the summary, the resampling variant and the
// correction; the Engine only orchestrates.
type Engine struct {
	cfg      *bootstrap.Config
	rs       *bootstrap.Resampler
	summary  Summarizer
	diff     differenceFunc
	observer Observer
	decimals int
}

type Option func(*Engine)

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithDecimals rounds win probabilities before their inverses are mirrored
// into a matrix, so the two halves of a reported matrix sum to one at that
// precision. The default (-1) keeps full precision.
func WithDecimals(d int) Option {
	return func(e *Engine) { e.decimals = d }
}

func New(rs *bootstrap.Resampler, opts ...Option) (*Engine, error) {
	if rs == nil {
		return nil, fmt.Errorf("%w: resampler is nil", model.ErrInvalidArgument)
	}
	cfg := rs.Config()
	summary, err := SummarizerFor(cfg)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		rs:       rs,
		summary:  summary,
		diff:     IndependentDifferences,
		decimals: -1,
	}
	if cfg.Resampling() == bootstrap.ResamplingDependent {
		e.diff = DependentDifferences
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Config() *bootstrap.Config { return e.cfg }

// CompareTwo resamples a (control) and b and summarises d = est(a*) - est(b*).
func (e *Engine) CompareTwo(a, b model.ReplicationSet) (Cell, error) {
	diffs, err := e.diff(e.rs, a, b)
	if err != nil {
		return Cell{}, err
	}
	return e.summary.Summarize(diffs)
}

// CompareResampled summarises two sequences that were already resampled,
// paired elementwise.
func (e *Engine) CompareResampled(a, b []float64) (Cell, error) {
	diffs, err := ElementwiseDifferences(a, b)
	if err != nil {
		return Cell{}, err
	}
	return e.summary.Summarize(diffs)
}

// CompareListwise compares control against each of others in order and
// returns one cell per comparator.
func (e *Engine) CompareListwise(control model.ReplicationSet, others model.Scenarios) ([]Cell, error) {
	out := make([]Cell, 0, len(others))
	for j, other := range others {
		c, err := e.CompareTwo(control, other)
		if err != nil {
			return nil, fmt.Errorf("comparator %d: %w", j+1, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// ComparePairwise runs the listwise comparison of scenario i against every
// later scenario, for each i in order. Row i of the result holds n-1-i
// cells; the last row is empty.
func (e *Engine) ComparePairwise(sc model.Scenarios) (Results, error) {
	if err := e.checkScenarios(sc); err != nil {
		return nil, err
	}
	n := len(sc)
	results := make(Results, n)
	for i := 0; i < n; i++ {
		row, err := e.CompareListwise(sc[i], sc[i+1:])
		if err != nil {
			return nil, fmt.Errorf("control %s: %w", model.ScenarioLabel(i), err)
		}
		results[i] = row
		if e.observer != nil && i < n-1 {
			e.observer.ListwiseComplete(i, i+1, n-1)
		}
	}
	return results, nil
}

// CompareAgainst compares one control scenario against every other
// scenario, in scenario order.
func (e *Engine) CompareAgainst(sc model.Scenarios, control int) ([]Row, error) {
	if err := e.checkScenarios(sc); err != nil {
		return nil, err
	}
	if control < 0 || control >= len(sc) {
		return nil, fmt.Errorf("%w: control %d out of range [1,%d]", model.ErrInvalidArgument, control+1, len(sc))
	}
	labels := sc.Labels()
	rows := make([]Row, 0, len(sc)-1)
	for j := range sc {
		if j == control {
			continue
		}
		c, err := e.CompareTwo(sc[control], sc[j])
		if err != nil {
			return nil, fmt.Errorf("control %s vs %s: %w", labels[control], labels[j], err)
		}
		rows = append(rows, newRow(control, j, labels, c))
	}
	if e.observer != nil {
		e.observer.ListwiseComplete(control, 1, 1)
	}
	return rows, nil
}

// Run performs the pairwise comparison of all scenarios and assembles the
// matrix and ledger views of it. Win-probability matrices get their inverse
// half filled in.
func (e *Engine) Run(sc model.Scenarios) (*Result, error) {
	results, err := e.ComparePairwise(sc)
	if err != nil {
		return nil, err
	}
	m := ResultsToMatrix(results)
	if e.cfg.Summary() == bootstrap.SummaryWinProbability {
		if err := m.InsertInverseResults(e.decimals); err != nil {
			return nil, err
		}
	}
	labels := sc.Labels()
	return &Result{
		Labels:             labels,
		Results:            results,
		Matrix:             m,
		Ledger:             LedgerFromResults(results, labels),
		Summary:            e.cfg.Summary(),
		NComparisons:       e.cfg.NComparisons(),
		AdjustedConfidence: e.cfg.AdjustedConfidence(),
	}, nil
}

func (e *Engine) checkScenarios(sc model.Scenarios) error {
	if e.cfg.Resampling() == bootstrap.ResamplingDependent {
		return sc.Aligned()
	}
	return sc.Validate()
}
