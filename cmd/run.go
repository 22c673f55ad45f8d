/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/sparkify/etl/config"
	"github.com/sparkify/etl/internal/logger"
	"github.com/sparkify/etl/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var newLogger = logger.New

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the full ETL pipeline",
	Long: `Loads every song file and then every log file. Each category is
committed in its own transaction. Usage:

	etl run
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		log, err := newLogger(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		// Execute exits only after RunE returns, so buffered entries are flushed.
		defer func() { _ = log.Sync() }()

		return runETL(cmd.Context(), cfg, log)
	},
}

func runETL(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) error {
	p, err := pipeline.Open(ctx, cfg, log)
	if err != nil {
		log.Errorw("failed to start pipeline", "error", err)
		return fmt.Errorf("failed to start pipeline: %w", err)
	}

	summary, err := p.Run(ctx)
	if closeErr := p.Close(); closeErr != nil {
		log.Warnw("failed to close pipeline", "error", closeErr)
	}
	if err != nil {
		return fmt.Errorf("etl error: %w", err)
	}

	log.Infow("etl finished",
		"song_files", summary.Songs.Files,
		"log_files", summary.Logs.Files,
		"songplays", summary.Logs.Songplays,
	)
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
