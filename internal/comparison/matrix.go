package comparison

import (
	"fmt"

	"bootcomp/internal/model"
)

// Results is the jagged output of a pairwise run: Results[i][k] compares
// scenario i with scenario i+1+k.
type Results [][]Cell

// Count returns the number of filled comparisons.
func (r Results) Count() int {
	n := 0
	for _, row := range r {
		n += len(row)
	}
	return n
}

// Matrix is the square view of a pairwise run. Cells[i][j] is the
// comparison with i as control; unfilled cells are NotApplicable.
type Matrix struct {
	Cells [][]Cell
}

// ResultsToMatrix places Results[i][k] at (i, i+1+k) of a square matrix
// sized len(results)+1. The extra row and column are never written by the
// jagged layout and stay NotApplicable.
func ResultsToMatrix(results Results) *Matrix {
	n := len(results) + 1
	cells := make([][]Cell, n)
	for i := range cells {
		cells[i] = make([]Cell, n)
	}
	for i, row := range results {
		for k, c := range row {
			j := i + 1 + k
			if j < n {
				cells[i][j] = c
			}
		}
	}
	return &Matrix{Cells: cells}
}

func (m *Matrix) Size() int { return len(m.Cells) }

func (m *Matrix) At(i, j int) Cell { return m.Cells[i][j] }

// InsertInverseResults fills the lower triangle of a win-probability
// matrix: for each filled (i, j) with i < j, (j, i) becomes 1 - p. With
// decimals >= 0 the primary value is rounded first and the inverse is
// computed from, and rounded to, that precision.
func (m *Matrix) InsertInverseResults(decimals int) error {
	for i := range m.Cells {
		for j := i + 1; j < len(m.Cells[i]); j++ {
			c := m.Cells[i][j]
			switch c.Kind {
			case NotApplicable:
				continue
			case Interval:
				return fmt.Errorf("%w: inverse of an interval cell (%d,%d) is undefined", model.ErrInvalidArgument, i+1, j+1)
			}
			p := Round(c.P, decimals)
			m.Cells[i][j] = ProbabilityCell(p)
			m.Cells[j][i] = ProbabilityCell(Round(1-p, decimals))
		}
	}
	return nil
}
