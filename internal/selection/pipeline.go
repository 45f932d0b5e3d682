package selection

import (
	"fmt"

	"bootcomp/internal/bootstrap"
	"bootcomp/internal/model"
)

// ConstraintStage applies Constraint to the named KPI.
type ConstraintStage struct {
	KPI string
	Constraint
}

// QualityStage configures the indifference-zone stage on the named KPI.
// The apparent best is chosen by the Pipeline, not here.
type QualityStage struct {
	KPI        string
	Tolerance  float64
	Confidence float64
	Objective  Objective
}

// Pipeline screens scenarios through every chance constraint in order,
// picks the apparent best survivor on the quality KPI and keeps the
// survivors that are indifferent to it.
type Pipeline struct {
	KPIs        []KPI
	Constraints []ConstraintStage
	Quality     QualityStage
}

type Outcome struct {
	Constraints []*ConstraintResult
	Feasible    []int
	// Best is -1 when no scenario survived the constraints.
	Best    int
	BestOf  *BestOfResult
	Quality *QualityResult
	// Selected is the recommended subset, in scenario order.
	Selected []int
	Labels   []string
}

func (p *Pipeline) kpi(name string) (KPI, bool) {
	for _, k := range p.KPIs {
		if k.Name == name {
			return k, true
		}
	}
	return KPI{}, false
}

// Validate checks every stage before the first random draw.
func (p *Pipeline) Validate() error {
	if len(p.KPIs) == 0 {
		return fmt.Errorf("%w: pipeline has no KPIs", model.ErrInvalidArgument)
	}
	n := len(p.KPIs[0].Data)
	for _, k := range p.KPIs {
		if err := k.Data.Validate(); err != nil {
			return fmt.Errorf("KPI %q: %w", k.Name, err)
		}
		if len(k.Data) != n {
			return fmt.Errorf("%w: KPI %q has %d scenarios, expected %d", model.ErrInvalidArgument, k.Name, len(k.Data), n)
		}
		if _, err := ParseObjective(string(k.Objective)); err != nil {
			return fmt.Errorf("KPI %q: %w", k.Name, err)
		}
	}
	for i, c := range p.Constraints {
		if _, ok := p.kpi(c.KPI); !ok {
			return fmt.Errorf("%w: constraint %d references unknown KPI %q", model.ErrInvalidArgument, i+1, c.KPI)
		}
		if err := c.Constraint.Validate(); err != nil {
			return fmt.Errorf("constraint %d: %w", i+1, err)
		}
	}
	if _, ok := p.kpi(p.Quality.KPI); !ok {
		return fmt.Errorf("%w: quality stage references unknown KPI %q", model.ErrInvalidArgument, p.Quality.KPI)
	}
	if p.Quality.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be >= 0", model.ErrInvalidArgument)
	}
	if _, err := ParseObjective(string(p.Quality.Objective)); err != nil {
		return err
	}
	return checkFraction("quality confidence", p.Quality.Confidence)
}

// Run executes the pipeline. All draws come from rs, so a seeded
// Resampler makes the outcome reproducible.
func (p *Pipeline) Run(rs *bootstrap.Resampler) (*Outcome, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := &Outcome{Best: -1, Selected: []int{}, Labels: p.KPIs[0].Data.Labels()}

	feasible := p.KPIs[0].Data.AllIndices()
	for i, stage := range p.Constraints {
		if len(feasible) == 0 {
			break
		}
		k, _ := p.kpi(stage.KPI)
		res, err := Constraints(rs, k.Data, feasible, stage.Constraint)
		if err != nil {
			return nil, fmt.Errorf("constraint %d on %q: %w", i+1, stage.KPI, err)
		}
		out.Constraints = append(out.Constraints, res)
		feasible = res.Feasible
	}
	out.Feasible = feasible
	if len(feasible) == 0 {
		return out, nil
	}

	qk, _ := p.kpi(p.Quality.KPI)
	qk.Objective = p.Quality.Objective
	order := []KPI{qk}
	for _, k := range p.KPIs {
		if k.Name != qk.Name {
			order = append(order, k)
		}
	}
	bo, err := BestOf(order, feasible)
	if err != nil {
		return nil, err
	}
	out.BestOf = bo
	out.Best = bo.Best

	q, err := QualityFilter(rs, qk.Data, feasible, Quality{
		Best:       bo.Best,
		Tolerance:  p.Quality.Tolerance,
		Confidence: p.Quality.Confidence,
		Objective:  p.Quality.Objective,
	})
	if err != nil {
		return nil, fmt.Errorf("quality on %q: %w", qk.Name, err)
	}
	out.Quality = q
	out.Selected = q.Selected
	return out, nil
}
