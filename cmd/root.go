// Package cmd implements the fairdeal CLI.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/YagYk/FairDeal/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fairdeal",
	Short: "Employment contract fairness analyzer",
	Long: `fairdeal extracts the key terms of an employment contract, places them
against market data, and produces a calibrated fairness score with red
flags and a negotiation playbook.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return config.InitLogger(cfg.Log)
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		zap.L().Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
