package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"bootcomp/internal/model"
)

// LoadCSV reads a delimited file where each column holds one scenario's
// replications.
func LoadCSV(path string, opts Options) (model.Scenarios, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func ReadCSV(r io.Reader, opts Options) (model.Scenarios, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}
	return parseTable(rows, opts)
}
