package data

import (
	"fmt"
	"strconv"
	"strings"

	"bootcomp/internal/model"
)

// HeaderMode controls how the first row of a table is interpreted.
type HeaderMode int

const (
	// HeaderAuto treats the first row as labels when any cell in it is not numeric.
	HeaderAuto HeaderMode = iota
	HeaderPresent
	HeaderAbsent
)

// Options shape how a scenario table is read.
type Options struct {
	Header HeaderMode
	// ExcludeReps drops this many trailing replications from every scenario.
	ExcludeReps int
	// Sheet names the spreadsheet tab; empty means the first one.
	Sheet string
}

// parseTable turns a column-per-scenario table into Scenarios. Columns may
// have different lengths: a column ends at its first empty cell, and any
// number after that is an error.
func parseTable(rows [][]string, opts Options) (model.Scenarios, error) {
	if opts.ExcludeReps < 0 {
		return nil, fmt.Errorf("%w: exclude_reps must be >= 0, got %d", model.ErrInvalidArgument, opts.ExcludeReps)
	}
	rows = trimEmptyRows(rows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: table is empty", model.ErrInsufficientData)
	}

	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	var labels []string
	body := rows
	if hasHeader(rows[0], opts.Header) {
		labels = make([]string, width)
		for j := range labels {
			labels[j] = strings.TrimSpace(cell(rows[0], j))
		}
		body = rows[1:]
	}

	out := make(model.Scenarios, 0, width)
	for j := 0; j < width; j++ {
		var vals []float64
		ended := false
		for i, r := range body {
			raw := strings.TrimSpace(cell(r, j))
			if raw == "" {
				ended = true
				continue
			}
			if ended {
				return nil, fmt.Errorf("%w: column %d has a gap before row %d", model.ErrInvalidArgument, j+1, i+1)
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: column %d row %d: %q is not a number", model.ErrInvalidArgument, j+1, i+1, raw)
			}
			vals = append(vals, v)
		}
		if opts.ExcludeReps > 0 {
			if opts.ExcludeReps >= len(vals) {
				return nil, fmt.Errorf("%w: column %d has %d replications, cannot exclude %d",
					model.ErrInsufficientData, j+1, len(vals), opts.ExcludeReps)
			}
			vals = vals[:len(vals)-opts.ExcludeReps]
		}
		label := ""
		if labels != nil {
			label = labels[j]
		}
		rs, err := model.NewReplicationSet(label, vals)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func hasHeader(first []string, mode HeaderMode) bool {
	switch mode {
	case HeaderPresent:
		return true
	case HeaderAbsent:
		return false
	}
	for _, c := range first {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, err := strconv.ParseFloat(c, 64); err != nil {
			return true
		}
	}
	return false
}

func cell(r []string, j int) string {
	if j < len(r) {
		return r[j]
	}
	return ""
}

func trimEmptyRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && blank(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func blank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
