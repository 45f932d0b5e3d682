package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"bootcomp/internal/config"
	"bootcomp/internal/model"

	"github.com/spf13/cobra"
)

// runFlags are shared by every subcommand that loads scenario data.
type runFlags struct {
	configPath  string
	dataPath    string
	format      string
	sheet       string
	excludeReps int

	nboots     int
	confidence float64
	correction string
	estimator  string
	resampling string
	mode       string
	workers    int
	seed       int64
	decimals   int

	logLevel string
}

var flags runFlags

var rootCmd = &cobra.Command{
	Use:   "bootcomp",
	Short: "bootcomp compares simulated scenarios with the bootstrap",
	Long: "Pairwise comparison, ranking and multi-stage selection of simulation " +
		"scenarios from replication data.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(flags.logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level %q", flags.logLevel)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to YAML run config")
	pf.StringVar(&flags.dataPath, "data", "", "Replication data file (csv, xlsx or json); overrides data.path")
	pf.StringVar(&flags.format, "format", "", "Data format; inferred from the extension when empty")
	pf.StringVar(&flags.sheet, "sheet", "", "Worksheet to read from an xlsx file")
	pf.IntVar(&flags.excludeReps, "exclude-reps", 0, "Drop the last N replications of every scenario")
	pf.IntVar(&flags.nboots, "nboots", 0, "Bootstrap draws (default 1000)")
	pf.Float64Var(&flags.confidence, "confidence", 0, "Confidence level in percent (default 95)")
	pf.StringVar(&flags.correction, "correction", "", "Multiple-comparison correction: bonferroni or none")
	pf.StringVar(&flags.estimator, "estimator", "", "Point estimator: mean or variance")
	pf.StringVar(&flags.resampling, "resampling", "", "independent or dependent (common random numbers)")
	pf.StringVar(&flags.mode, "mode", "", "sequential or parallel")
	pf.IntVar(&flags.workers, "workers", 0, "Parallel workers (0 = GOMAXPROCS)")
	pf.Int64Var(&flags.seed, "seed", 0, "Random seed for reproducible runs")
	pf.IntVar(&flags.decimals, "decimals", 0, "Decimal places in reports (default 2)")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "debug, info, warn or error")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(crnCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config when given and overlays the command-line flags.
func loadConfig(cmd *cobra.Command, override config.BootstrapConfig) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		var err error
		if cfg, err = config.LoadUnchecked(flags.configPath); err != nil {
			return nil, err
		}
	}
	if flags.dataPath != "" {
		cfg.Data.Path = flags.dataPath
	}
	if flags.format != "" {
		cfg.Data.Format = strings.ToLower(flags.format)
	}
	if flags.sheet != "" {
		cfg.Data.Sheet = flags.sheet
	}
	if flags.excludeReps != 0 {
		cfg.Data.ExcludeReps = flags.excludeReps
	}

	override.NBoots = flags.nboots
	override.Confidence = flags.confidence
	override.Correction = flags.correction
	override.Estimator = flags.estimator
	override.Resampling = flags.resampling
	override.Mode = flags.mode
	override.Workers = flags.workers
	pf := cmd.Flags()
	if pf.Changed("seed") {
		s := flags.seed
		override.Seed = &s
	}
	if pf.Changed("decimals") {
		d := flags.decimals
		override.Decimals = &d
	}
	cfg.Bootstrap = config.MergeBootstrap(cfg.Bootstrap, override)

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("config loaded", "data", cfg.Data.Path, "nboots", cfg.Bootstrap.NBoots, "confidence", cfg.Bootstrap.Confidence)
	return cfg, nil
}

func loadScenarios(cmd *cobra.Command, override config.BootstrapConfig) (*config.Config, model.Scenarios, error) {
	cfg, err := loadConfig(cmd, override)
	if err != nil {
		return nil, nil, err
	}
	sc, err := cfg.LoadScenarios()
	if err != nil {
		return nil, nil, err
	}
	slog.Info("scenarios loaded", "count", len(sc), "path", cfg.Data.Path)
	return cfg, sc, nil
}
