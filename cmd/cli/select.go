package main

import (
	"errors"

	"bootcomp/internal/config"
	"bootcomp/internal/report"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Screen scenarios by chance constraints and select the best subset",
	Long: "Runs the selection section of the config: each chance constraint in order, " +
		"then the indifference-zone filter around the apparent best feasible scenario.",
	Example: "  bootcomp select --config examples/select.yaml --seed 42",
	RunE:    runSelect,
}

func runSelect(cmd *cobra.Command, args []string) error {
	if flags.configPath == "" {
		return errors.New("--config is required")
	}
	cfg, err := loadConfig(cmd, config.BootstrapConfig{})
	if err != nil {
		return err
	}
	p, err := cfg.Pipeline()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	rs, err := cfg.Bootstrap.NewResampler(len(p.KPIs[0].Data))
	if err != nil {
		return err
	}
	out, err := p.Run(rs)
	if err != nil {
		return err
	}
	return report.Outcome(cmd.OutOrStdout(), out, p, cfg.Bootstrap.DecimalsOrDefault())
}
