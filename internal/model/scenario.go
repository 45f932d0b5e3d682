package model

import (
	"fmt"
	"math"
)

// ReplicationSet is one scenario's raw performance sample: the output of
// independent replications of a single simulated system design.
// It is immutable once constructed.
type ReplicationSet struct {
	label string
	obs   []float64
}

// NewReplicationSet copies values into a new ReplicationSet.
// NaN and infinite observations are rejected.
func NewReplicationSet(label string, values []float64) (ReplicationSet, error) {
	obs := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ReplicationSet{}, fmt.Errorf("%w: %s replication %d is not finite", ErrInvalidArgument, label, i+1)
		}
		obs[i] = v
	}
	return ReplicationSet{label: label, obs: obs}, nil
}

// MustReplicationSet is NewReplicationSet for literals in tests and demos.
func MustReplicationSet(label string, values ...float64) ReplicationSet {
	rs, err := NewReplicationSet(label, values)
	if err != nil {
		panic(err)
	}
	return rs
}

func (r ReplicationSet) Label() string { return r.label }

func (r ReplicationSet) Len() int { return len(r.obs) }

// At returns observation i (0-based).
func (r ReplicationSet) At(i int) float64 { return r.obs[i] }

// Values returns a copy of the observations.
func (r ReplicationSet) Values() []float64 {
	out := make([]float64, len(r.obs))
	copy(out, r.obs)
	return out
}

// Scenarios is the ordered collection of ReplicationSets under comparison.
// Position is identity: scenario i is reported as S{i+1}.
type Scenarios []ReplicationSet

// Labels returns the reporting label of each scenario, falling back to S1..Sn.
func (s Scenarios) Labels() []string {
	out := make([]string, len(s))
	for i, rs := range s {
		out[i] = rs.Label()
		if out[i] == "" {
			out[i] = ScenarioLabel(i)
		}
	}
	return out
}

// ScenarioLabel is the 1-based reporting label for a 0-based scenario index.
func ScenarioLabel(i int) string {
	return fmt.Sprintf("S%d", i+1)
}

// Validate checks that every scenario holds at least one observation.
func (s Scenarios) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no scenarios", ErrInsufficientData)
	}
	for i, rs := range s {
		if rs.Len() == 0 {
			return fmt.Errorf("%w: scenario %s has no replications", ErrInsufficientData, ScenarioLabel(i))
		}
	}
	return nil
}

// Aligned checks the dependent-resampling invariant: every scenario has the
// same number of replications, so row r in each one came from the same
// random number stream.
func (s Scenarios) Aligned() error {
	if err := s.Validate(); err != nil {
		return err
	}
	n := s[0].Len()
	for i, rs := range s[1:] {
		if rs.Len() != n {
			return fmt.Errorf("%w: %s has %d replications, %s has %d",
				ErrMisalignedScenarios, ScenarioLabel(0), n, ScenarioLabel(i+1), rs.Len())
		}
	}
	return nil
}

// Subset returns the scenarios at the given indices, in that order.
func (s Scenarios) Subset(indices []int) (Scenarios, error) {
	out := make(Scenarios, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(s) {
			return nil, fmt.Errorf("%w: scenario index %d out of range [0,%d)", ErrInvalidArgument, idx, len(s))
		}
		out = append(out, s[idx])
	}
	return out, nil
}

// AllIndices returns 0..len(s)-1.
func (s Scenarios) AllIndices() []int {
	out := make([]int, len(s))
	for i := range out {
		out[i] = i
	}
	return out
}
