package model

import "fmt"

// ResampleMatrix holds bootstrap point estimates: one row per bootstrap draw,
// one column per scenario, column order matching Scenarios order.
type ResampleMatrix [][]float64

// NewResampleMatrix allocates an nboots x nscenarios matrix of zeros.
func NewResampleMatrix(nboots, nscenarios int) ResampleMatrix {
	m := make(ResampleMatrix, nboots)
	for i := range m {
		m[i] = make([]float64, nscenarios)
	}
	return m
}

// MatrixFromSeries transposes per-scenario resample sequences (scenario -> nboots
// values) into the row-per-draw layout. All sequences must have equal length.
func MatrixFromSeries(series [][]float64) (ResampleMatrix, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no resample series", ErrInsufficientData)
	}
	nboots := len(series[0])
	for j, s := range series {
		if len(s) != nboots {
			return nil, fmt.Errorf("%w: series %d has %d resamples, expected %d", ErrInvalidArgument, j, len(s), nboots)
		}
	}
	m := NewResampleMatrix(nboots, len(series))
	for j, s := range series {
		for i, v := range s {
			m[i][j] = v
		}
	}
	return m, nil
}

func (m ResampleMatrix) NBoots() int { return len(m) }

func (m ResampleMatrix) NScenarios() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Column returns a copy of scenario j's resampled estimates.
func (m ResampleMatrix) Column(j int) []float64 {
	out := make([]float64, len(m))
	for i, row := range m {
		out[i] = row[j]
	}
	return out
}

// Validate checks the matrix is non-empty and rectangular.
func (m ResampleMatrix) Validate() error {
	if len(m) == 0 || len(m[0]) == 0 {
		return fmt.Errorf("%w: empty resample matrix", ErrInsufficientData)
	}
	k := len(m[0])
	for i, row := range m {
		if len(row) != k {
			return fmt.Errorf("%w: resample row %d has %d columns, expected %d", ErrInvalidArgument, i, len(row), k)
		}
	}
	return nil
}
