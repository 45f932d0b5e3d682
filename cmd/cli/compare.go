package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bootcomp/internal/comparison"
	"bootcomp/internal/config"
	"bootcomp/internal/report"

	"github.com/spf13/cobra"
)

var compareOpts struct {
	summary string
	design  string
	control int
	out     string
	ledger  string
	long    string
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare every pair of scenarios, or one control against the rest",
	Example: "  bootcomp compare --config run.yaml --out results/matrix.csv\n" +
		"  bootcomp compare --data runs.csv --summary win_probability --control 1",
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&compareOpts.summary, "summary", "", "percentile_ci or win_probability")
	f.StringVar(&compareOpts.design, "design", "", "pairwise or listwise; listwise is implied by --control")
	f.IntVar(&compareOpts.control, "control", 0, "Compare only this scenario (1-based) against the others")
	f.StringVar(&compareOpts.out, "out", "", "Write the result matrix as CSV")
	f.StringVar(&compareOpts.ledger, "ledger", "", "Write one CSV row per comparison")
	f.StringVar(&compareOpts.long, "long", "", "Write the long text format")
}

func runCompare(cmd *cobra.Command, args []string) error {
	override := config.BootstrapConfig{Summary: compareOpts.summary, Design: compareOpts.design}
	cfg, sc, err := loadScenarios(cmd, override)
	if err != nil {
		return err
	}
	if compareOpts.control > 0 && cfg.Bootstrap.Design == "" {
		cfg.Bootstrap.Design = "listwise"
	}

	rs, err := cfg.Bootstrap.NewResampler(len(sc))
	if err != nil {
		return err
	}
	decimals := cfg.Bootstrap.DecimalsOrDefault()
	eng, err := comparison.New(rs,
		comparison.WithDecimals(decimals),
		comparison.WithObserver(comparison.ObserverFunc(func(control, completed, total int) {
			slog.Info("comparisons complete", "control", sc[control].Label(), "completed", completed, "total", total)
		})),
	)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if compareOpts.control > 0 {
		rows, err := eng.CompareAgainst(sc, compareOpts.control-1)
		if err != nil {
			return err
		}
		if err := report.Against(w, rows, decimals); err != nil {
			return err
		}
		if compareOpts.ledger != "" {
			return writeWith(compareOpts.ledger, func(p string) error {
				return comparison.WriteLedgerCSV(p, rows, decimals)
			})
		}
		return nil
	}

	res, err := eng.Run(sc)
	if err != nil {
		return err
	}
	if err := report.Comparison(w, res, decimals); err != nil {
		return err
	}
	if compareOpts.out != "" {
		if err := writeWith(compareOpts.out, func(p string) error {
			return comparison.WriteMatrixCSV(p, res.Matrix, res.Labels, decimals)
		}); err != nil {
			return err
		}
	}
	if compareOpts.ledger != "" {
		if err := writeWith(compareOpts.ledger, func(p string) error {
			return comparison.WriteLedgerCSV(p, res.Ledger, decimals)
		}); err != nil {
			return err
		}
	}
	if compareOpts.long != "" {
		if err := writeWith(compareOpts.long, func(p string) error {
			f, err := os.Create(p)
			if err != nil {
				return err
			}
			defer f.Close()
			return comparison.WriteLongFormat(f, res.Results, res.Labels, decimals)
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeWith ensures the output directory exists before calling write.
func writeWith(path string, write func(string) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := write(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
