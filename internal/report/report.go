// Package report renders run results as console tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"bootcomp/internal/analysis"
	"bootcomp/internal/bootstrap"
	"bootcomp/internal/comparison"
	"bootcomp/internal/selection"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorBorder = lipgloss.Color("#16858E")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorPass   = lipgloss.Color("#2CD7C7")
	colorFail   = lipgloss.Color("#E74C3C")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	passStyle   = lipgloss.NewStyle().Foreground(colorPass)
	failStyle   = lipgloss.NewStyle().Foreground(colorFail)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func title(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, titleStyle.Render(s))
	return err
}

func render(w io.Writer, t *table.Table) error {
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func ff(x float64, decimals int) string {
	if decimals < 0 {
		return strconv.FormatFloat(x, 'g', 6, 64)
	}
	return strconv.FormatFloat(x, 'f', decimals, 64)
}

// Comparison prints the matrix view of a pairwise run.
func Comparison(w io.Writer, res *comparison.Result, decimals int) error {
	heading := "Pairwise comparison (" + string(res.Summary) + ")"
	if res.Summary == bootstrap.SummaryPercentileCI {
		heading += fmt.Sprintf(", %d comparisons, confidence %s%%", res.NComparisons, ff(res.AdjustedConfidence, 4))
	}
	if err := title(w, heading); err != nil {
		return err
	}
	n := res.Matrix.Size()
	t := newTable(append([]string{""}, res.Labels[:n]...)...)
	for i := 0; i < n; i++ {
		row := make([]string, 0, n+1)
		row = append(row, res.Labels[i])
		for j := 0; j < n; j++ {
			row = append(row, res.Matrix.At(i, j).Format(decimals))
		}
		t.Row(row...)
	}
	return render(w, t)
}

// Against prints the rows of a single-control comparison.
func Against(w io.Writer, rows []comparison.Row, decimals int) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("no comparisons"))
		return err
	}
	if err := title(w, "Comparison against "+rows[0].ControlLabel); err != nil {
		return err
	}
	t := newTable("control", "comparator", "result")
	for _, r := range rows {
		t.Row(r.ControlLabel, r.ComparatorLabel, r.Cell.Format(decimals))
	}
	return render(w, t)
}

func Rankings(w io.Writer, rule analysis.Rule, rankings []analysis.Ranking, decimals int) error {
	if err := title(w, "Ranking ("+string(rule)+")"); err != nil {
		return err
	}
	t := newTable("scenario", "frequency", "proportion")
	for _, r := range rankings {
		t.Row(r.Label, strconv.Itoa(r.Frequency), ff(r.Proportion, decimals))
	}
	return render(w, t)
}

func Summaries(w io.Writer, sums []analysis.Summary, decimals int) error {
	if err := title(w, "Scenario summary"); err != nil {
		return err
	}
	t := newTable("scenario", "n", "mean", "std dev", "min", "p05", "p95", "max")
	for _, s := range sums {
		t.Row(s.Label, strconv.Itoa(s.Count),
			ff(s.Mean, decimals), ff(s.StdDev, decimals),
			ff(s.Min, decimals), ff(s.P05, decimals), ff(s.P95, decimals), ff(s.Max, decimals))
	}
	return render(w, t)
}

func VarianceChecks(w io.Writer, checks []bootstrap.VarianceCheck, labels []string, decimals int) error {
	if err := title(w, "Common random numbers check"); err != nil {
		return err
	}
	t := newTable("pair", "var sum", "var diff", "reduced")
	for _, c := range checks {
		t.Row(labels[c.First]+" / "+labels[c.Second],
			ff(c.SumOfVariances, decimals), ff(c.VarianceOfDifference, decimals), yesNo(c.Reduced))
	}
	return render(w, t)
}

// Outcome prints every selection stage and the recommended subset.
func Outcome(w io.Writer, out *selection.Outcome, p *selection.Pipeline, decimals int) error {
	for i, res := range out.Constraints {
		stage := p.Constraints[i]
		heading := fmt.Sprintf("Constraint %d: %s %s %s, gamma %s",
			i+1, stage.KPI, boundSymbol(stage.Direction), ff(stage.Threshold, decimals), ff(stage.Gamma, decimals))
		if err := title(w, heading); err != nil {
			return err
		}
		if err := render(w, screensTable(res.Screens, decimals)); err != nil {
			return err
		}
	}
	if out.Best < 0 {
		_, err := fmt.Fprintln(w, failStyle.Render("no scenario satisfies every constraint"))
		return err
	}
	if out.BestOf != nil {
		if err := title(w, "Apparent best: "+out.Labels[out.Best]); err != nil {
			return err
		}
		t := newTable(append([]string{"scenario"}, out.BestOf.KPIs...)...)
		for _, row := range out.BestOf.Table {
			cells := []string{row.Label}
			for _, m := range row.Means {
				cells = append(cells, ff(m, decimals))
			}
			t.Row(cells...)
		}
		if err := render(w, t); err != nil {
			return err
		}
	}
	if out.Quality != nil {
		heading := fmt.Sprintf("Indifference zone on %s: threshold %s, confidence %s",
			p.Quality.KPI, ff(out.Quality.Threshold, decimals), ff(p.Quality.Confidence, decimals))
		if err := title(w, heading); err != nil {
			return err
		}
		if err := render(w, screensTable(out.Quality.Screens, decimals)); err != nil {
			return err
		}
	}
	names := make([]string, len(out.Selected))
	for i, s := range out.Selected {
		names[i] = out.Labels[s]
	}
	_, err := fmt.Fprintln(w, passStyle.Render("Selected: "+strings.Join(names, ", ")))
	return err
}

func screensTable(screens []selection.Screen, decimals int) *table.Table {
	t := newTable("scenario", "proportion", "result", "reason")
	for _, s := range screens {
		result := failStyle.Render("fail")
		if s.Passed {
			result = passStyle.Render("pass")
		}
		t.Row(s.Label, ff(s.Proportion, decimals), result, s.Reason)
	}
	return t
}

func boundSymbol(d selection.Direction) string {
	if d == selection.Upper {
		return "<="
	}
	return ">="
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
