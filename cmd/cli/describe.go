package main

import (
	"bootcomp/internal/analysis"
	"bootcomp/internal/bootstrap"
	"bootcomp/internal/config"
	"bootcomp/internal/report"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print descriptive statistics for each scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, sc, err := loadScenarios(cmd, config.BootstrapConfig{})
		if err != nil {
			return err
		}
		sums, err := analysis.DescribeAll(sc)
		if err != nil {
			return err
		}
		return report.Summaries(cmd.OutOrStdout(), sums, cfg.Bootstrap.DecimalsOrDefault())
	},
}

var crnCmd = &cobra.Command{
	Use:   "crn",
	Short: "Check whether common random numbers reduced the variance of differences",
	Long: "For every adjacent pair of scenarios, compares Var(X1)+Var(X2) with Var(X2-X1). " +
		"Scenarios must have the same number of replications.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, sc, err := loadScenarios(cmd, config.BootstrapConfig{})
		if err != nil {
			return err
		}
		checks, err := bootstrap.VarianceReduction(sc)
		if err != nil {
			return err
		}
		return report.VarianceChecks(cmd.OutOrStdout(), checks, sc.Labels(), cfg.Bootstrap.DecimalsOrDefault())
	},
}
