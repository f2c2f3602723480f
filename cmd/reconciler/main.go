package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smart-reconciliation/internal/config"
	"smart-reconciliation/internal/gateway"
	"smart-reconciliation/internal/logging"
	"smart-reconciliation/internal/usecase"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reconciler",
		Short: "Reconcile bank statements against the general ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newReconcileCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newReconcileCommand() *cobra.Command {
	var (
		bankPaths  []string
		bookPath   string
		configPath string
		logLevel   string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match bank and book CSV files and suggest fixes for leftovers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			tolerance, err := cfg.Tolerance()
			if err != nil {
				return err
			}

			logger := logging.NewLogger(cfg.Logging, os.Stderr)

			// --- Dependency Injection (Wiring the application) ---
			csvRepo := gateway.NewCSVRecordRepository()
			engine := usecase.NewEngine(
				usecase.NewMatcher(usecase.MatchConfig{
					AcceptThreshold: cfg.Matching.AcceptThreshold,
					AmountTolerance: tolerance,
				}),
				usecase.NewAnomalyClassifier(usecase.ClassifierConfig{
					AmountTolerance:         tolerance,
					TranspositionWindowDays: cfg.Classifier.TranspositionWindowDays,
				}),
			)
			reconciliationUseCase := usecase.NewReconciliationUseCase(csvRepo, engine, logger)

			// --- Execute the Usecase ---
			report, err := reconciliationUseCase.Reconcile(cmd.Context(), bankPaths, bookPath)
			if err != nil {
				return fmt.Errorf("reconciliation failed: %w", err)
			}

			// --- Present the Output ---
			output, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to generate JSON report: %w", err)
			}
			if outputPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(output))
				return nil
			}
			if err := os.WriteFile(outputPath, append(output, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			logger.Info("report written", "path", outputPath)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&bankPaths, "bank", nil, "Bank statement CSV files, repeated or comma-separated, read in order (required)")
	cmd.Flags().StringVar(&bookPath, "book", "", "Path to the general ledger CSV file (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the JSON report to this file instead of stdout")
	_ = cmd.MarkFlagRequired("bank")
	_ = cmd.MarkFlagRequired("book")

	return cmd
}
