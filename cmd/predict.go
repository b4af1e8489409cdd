package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"endolab/coloprep/internal/tabular"
	"endolab/coloprep/prep"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Classify full reports with a trained model",
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().String("model", "", "Path to the trained model artifact")
	predictCmd.Flags().String("input", "", "Table with full report texts (.csv/.tsv/.xlsx)")
	predictCmd.Flags().String("output", "", "Path for the output table")
	predictCmd.Flags().String("text-col", "", "Column holding the full report text (name or #N)")
	predictCmd.Flags().Bool("extract", false, "Also extract procedural variables into extra columns")
	_ = predictCmd.MarkFlagRequired("model")
	_ = predictCmd.MarkFlagRequired("input")
	_ = predictCmd.MarkFlagRequired("output")
	_ = predictCmd.MarkFlagRequired("text-col")
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	modelPath, _ := cmd.Flags().GetString("model")
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	textCol, _ := cmd.Flags().GetString("text-col")
	extract, _ := cmd.Flags().GetBool("extract")

	// Model problems are fatal before any row is touched.
	model, err := prep.LoadModel(modelPath)
	if err != nil {
		return err
	}
	table, err := tabular.Read(inputPath)
	if err != nil {
		return err
	}
	pipeline, err := prep.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}
	result, err := pipeline.Predict(model, table, prep.PredictOptions{
		TextColumn: textCol,
		Extract:    extract,
	})
	if err != nil {
		return err
	}
	if err := tabular.Write(outputPath, prep.AssembleOutput(table, result)); err != nil {
		return err
	}
	logger.Info("predictions saved",
		zap.String("path", outputPath),
		zap.String("distribution", result.Summary.DistributionString()),
	)
	return nil
}
