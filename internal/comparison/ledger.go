package comparison

import "bootcomp/internal/bootstrap"

// Row is one comparison in long form.
// It is the primary artifact for "who beat whom" in a run.
type Row struct {
	Control    int
	Comparator int

	ControlLabel    string
	ComparatorLabel string

	Cell Cell
}

func newRow(control, comparator int, labels []string, c Cell) Row {
	return Row{
		Control:         control,
		Comparator:      comparator,
		ControlLabel:    labels[control],
		ComparatorLabel: labels[comparator],
		Cell:            c,
	}
}

// LedgerFromResults flattens jagged results in control-major order.
func LedgerFromResults(results Results, labels []string) []Row {
	rows := make([]Row, 0, results.Count())
	for i, row := range results {
		for k, c := range row {
			rows = append(rows, newRow(i, i+1+k, labels, c))
		}
	}
	return rows
}

type Result struct {
	Labels  []string
	Results Results
	Matrix  *Matrix
	Ledger  []Row

	Summary            bootstrap.SummaryKind
	NComparisons       int
	AdjustedConfidence float64
}
