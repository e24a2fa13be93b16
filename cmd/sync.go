package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one occurrence cache pass",
	Long:  `Reconciles the source occurrence index against the staging ledger once and exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEnv()
		if err != nil {
			return err
		}
		defer e.logg.Sync()

		feature, err := e.occurrenceFeature()
		if err != nil {
			return err
		}

		summary, err := feature.Service().CacheOccurrences(cmd.Context())
		if err != nil {
			return fmt.Errorf("cache pass failed: %w", err)
		}

		e.logg.Info("Cache pass finished", zap.String("summary", summary))
		fmt.Println(summary)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
