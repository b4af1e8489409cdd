package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"endolab/coloprep/internal/logging"
	"endolab/coloprep/prep"
)

var rootCmd = &cobra.Command{
	Use:   "coloprep",
	Short: "Bowel-preparation quality classification for colonoscopy reports",
	Long: "coloprep classifies free-text colonoscopy reports into a bowel-preparation\n" +
		"quality category (good/intermediate/poor) with a trained n-gram model plus\n" +
		"deterministic lexical overrides, and extracts procedural variables such as\n" +
		"polyp counts, sizes and intubation flags.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to an optional pipeline config JSON file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the shared config and logger for a subcommand run.
func setup(cmd *cobra.Command) (prep.Config, *zap.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := logging.New(level)
	if err != nil {
		return prep.Config{}, nil, err
	}
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := prep.LoadConfig(configPath)
	if err != nil {
		return prep.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger, nil
}
