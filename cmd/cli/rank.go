package main

import (
	"bootcomp/internal/analysis"
	"bootcomp/internal/config"
	"bootcomp/internal/report"

	"github.com/spf13/cobra"
)

var rankOpts struct {
	rule string
	m    int
	out  string
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Count how often each scenario is best across bootstrap draws",
	RunE:  runRank,
}

func init() {
	f := rankCmd.Flags()
	f.StringVar(&rankOpts.rule, "rule", "min", "min, max, msmallest or mlargest")
	f.IntVar(&rankOpts.m, "m", 1, "Subset size for msmallest and mlargest")
	f.StringVar(&rankOpts.out, "out", "", "Write the ranking table as CSV")
}

func runRank(cmd *cobra.Command, args []string) error {
	rule, err := analysis.ParseRule(rankOpts.rule)
	if err != nil {
		return err
	}
	cfg, sc, err := loadScenarios(cmd, config.BootstrapConfig{})
	if err != nil {
		return err
	}
	rs, err := cfg.Bootstrap.NewResampler(len(sc))
	if err != nil {
		return err
	}
	m, err := rs.Resample(sc)
	if err != nil {
		return err
	}
	ranked, err := analysis.Rank(m, rule, rankOpts.m)
	if err != nil {
		return err
	}
	ranked = analysis.WithLabels(ranked, sc.Labels())

	if err := report.Rankings(cmd.OutOrStdout(), rule, ranked, cfg.Bootstrap.DecimalsOrDefault()); err != nil {
		return err
	}
	if rankOpts.out != "" {
		return writeWith(rankOpts.out, func(p string) error {
			return analysis.WriteRankingCSV(p, ranked)
		})
	}
	return nil
}
