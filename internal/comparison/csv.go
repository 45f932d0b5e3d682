package comparison

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteMatrixCSV writes m as an (n+1)x(n+1) grid: a header row and column
// of scenario labels and "-" for every empty cell.
func WriteMatrixCSV(path string, m *Matrix, labels []string, decimals int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteMatrix(f, m, labels, decimals)
}

func WriteMatrix(out io.Writer, m *Matrix, labels []string, decimals int) error {
	n := m.Size()
	if len(labels) < n {
		return fmt.Errorf("matrix of size %d needs %d labels, got %d", n, n, len(labels))
	}
	w := csv.NewWriter(out)

	header := make([]string, 0, n+1)
	header = append(header, "")
	header = append(header, labels[:n]...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		row := make([]string, 0, n+1)
		row = append(row, labels[i])
		for j := 0; j < n; j++ {
			row = append(row, m.At(i, j).Format(decimals))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func WriteLedgerCSV(path string, ledger []Row, decimals int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"control",
		"comparator",
		"control_label",
		"comparator_label",
		"lower",
		"upper",
		"probability",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Control + 1),
			strconv.Itoa(r.Comparator + 1),
			r.ControlLabel,
			r.ComparatorLabel,
			"", "", "",
		}
		switch r.Cell.Kind {
		case Interval:
			row[4] = fmtFloat(r.Cell.Lower, decimals)
			row[5] = fmtFloat(r.Cell.Upper, decimals)
		case Probability:
			row[6] = fmtFloat(r.Cell.P, decimals)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteLongFormat prints one block per control scenario:
//
//	Scenario S1
//	Vs. S2: [-1.2, 0.4]
func WriteLongFormat(out io.Writer, results Results, labels []string, decimals int) error {
	for i, row := range results {
		if len(row) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(out, "Scenario %s\n", labels[i]); err != nil {
			return err
		}
		for k, c := range row {
			if _, err := fmt.Fprintf(out, "Vs. %s: %s\n", labels[i+1+k], c.Format(decimals)); err != nil {
				return err
			}
		}
	}
	return nil
}

func fmtFloat(x float64, decimals int) string {
	if decimals < 0 {
		decimals = 6
	}
	return strconv.FormatFloat(Round(x, decimals), 'f', decimals, 64)
}
