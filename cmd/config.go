package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"endolab/coloprep/prep"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the pipeline configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: "Writes the full pipeline configuration (anchors, segment window, fallback\n" +
		"label, marker-file path, fit and cross-validation settings) to a JSON file\n" +
		"so individual settings can be edited without rebuilding.",
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().String("out", "", "Path for the config file")
	_ = configInitCmd.MarkFlagRequired("out")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	outPath, _ := cmd.Flags().GetString("out")
	if err := prep.SaveConfig(outPath, prep.Config{}); err != nil {
		return err
	}
	logger.Info("config written", zap.String("path", outPath))
	return nil
}
