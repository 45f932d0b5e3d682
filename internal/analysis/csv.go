package analysis

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteRankingCSV(path string, rankings []Ranking) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"scenario", "label", "frequency", "proportion"}); err != nil {
		return err
	}
	for _, r := range rankings {
		row := []string{
			strconv.Itoa(r.Scenario),
			r.Label,
			strconv.Itoa(r.Frequency),
			fmtFloat(r.Proportion),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
