package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dispatchCmd represents the dispatch command
var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Send staged records to the platform",
	Long:  `Sends pending staged records to the platform once and exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runOccurrenceDispatch(cmd)
	},
}

// dispatchOccurrencesCmd represents the dispatch occurrences command
var dispatchOccurrencesCmd = &cobra.Command{
	Use:   "occurrences",
	Short: "Send pending staged occurrences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOccurrenceDispatch(cmd)
	},
}

// dispatchHoursCmd represents the dispatch servicehours command
var dispatchHoursCmd = &cobra.Command{
	Use:   "servicehours",
	Short: "Send staged verified service hours",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEnv()
		if err != nil {
			return err
		}
		defer e.logg.Sync()

		summary, err := e.servicehoursFeature().Service().Dispatch(cmd.Context())
		if err != nil {
			return fmt.Errorf("service-hours dispatch failed: %w", err)
		}

		e.logg.Info("Service-hours dispatch finished", zap.String("summary", summary))
		fmt.Println(summary)
		return nil
	},
}

func runOccurrenceDispatch(cmd *cobra.Command) error {
	e, err := buildEnv()
	if err != nil {
		return err
	}
	defer e.logg.Sync()

	feature, err := e.occurrenceFeature()
	if err != nil {
		return err
	}

	summary, err := feature.Service().DispatchOccurrences(cmd.Context())
	if err != nil {
		return fmt.Errorf("dispatch failed: %w", err)
	}

	e.logg.Info("Dispatch finished", zap.String("summary", summary))
	fmt.Println(summary)
	return nil
}

func init() {
	RootCmd.AddCommand(dispatchCmd)
	dispatchCmd.AddCommand(dispatchOccurrencesCmd, dispatchHoursCmd)
}
