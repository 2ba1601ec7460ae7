package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joblens/joblens/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "joblens",
	Short: "Multi-source job-market intelligence tools",
	Long:  "Scrapes job boards, company review sites and compensation trackers, normalizes the results into typed records, and serves aggregated markdown reports through five query tools.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
