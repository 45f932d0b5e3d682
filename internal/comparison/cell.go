package comparison

import (
	"math"
	"strconv"
)

// CellKind tells what a comparison cell holds.
type CellKind int

const (
	// NotApplicable marks self comparisons and cells no comparison filled.
	NotApplicable CellKind = iota
	Interval
	Probability
)

// NotApplicableMarker is how an empty cell is rendered.
const NotApplicableMarker = "-"

// Cell is one comparison summary: a [Lower, Upper] percentile interval or a
// scalar probability P. The zero value is NotApplicable.
type Cell struct {
	Kind  CellKind
	Lower float64
	Upper float64
	P     float64
}

func IntervalCell(lower, upper float64) Cell {
	return Cell{Kind: Interval, Lower: lower, Upper: upper}
}

func ProbabilityCell(p float64) Cell {
	return Cell{Kind: Probability, P: p}
}

func (c Cell) Applicable() bool { return c.Kind != NotApplicable }

// Rounded returns c with every value rounded to decimals places.
// A negative decimals keeps full precision.
func (c Cell) Rounded(decimals int) Cell {
	c.Lower = Round(c.Lower, decimals)
	c.Upper = Round(c.Upper, decimals)
	c.P = Round(c.P, decimals)
	return c
}

// Format renders the cell for reports: "-", "[l, u]" or "p".
func (c Cell) Format(decimals int) string {
	switch c.Kind {
	case Interval:
		return "[" + formatFloat(c.Lower, decimals) + ", " + formatFloat(c.Upper, decimals) + "]"
	case Probability:
		return formatFloat(c.P, decimals)
	default:
		return NotApplicableMarker
	}
}

// Round rounds x half away from zero to decimals places; negative decimals
// returns x unchanged.
func Round(x float64, decimals int) float64 {
	if decimals < 0 {
		return x
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

func formatFloat(x float64, decimals int) string {
	if decimals < 0 {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strconv.FormatFloat(Round(x, decimals), 'f', decimals, 64)
}
