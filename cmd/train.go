package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"endolab/coloprep/internal/tabular"
	"endolab/coloprep/prep"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the cleanliness classifier on labeled phrases",
	RunE:  runTrain,
}

func init() {
	trainCmd.Flags().String("input", "", "Labeled training table (.csv/.tsv/.xlsx)")
	trainCmd.Flags().String("text-col", "", "Column holding the cleanliness phrases (name or #N)")
	trainCmd.Flags().String("label-col", "", "Column holding the gold labels (name or #N)")
	trainCmd.Flags().String("out-model", "", "Path for the persisted model artifact")
	trainCmd.Flags().Int("folds", 0, "Cross-validation folds (default from config, 5)")
	_ = trainCmd.MarkFlagRequired("input")
	_ = trainCmd.MarkFlagRequired("text-col")
	_ = trainCmd.MarkFlagRequired("label-col")
	_ = trainCmd.MarkFlagRequired("out-model")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if folds, _ := cmd.Flags().GetInt("folds"); folds > 0 {
		cfg.CVFolds = folds
	}
	inputPath, _ := cmd.Flags().GetString("input")
	textCol, _ := cmd.Flags().GetString("text-col")
	labelCol, _ := cmd.Flags().GetString("label-col")
	modelPath, _ := cmd.Flags().GetString("out-model")

	table, err := tabular.Read(inputPath)
	if err != nil {
		return err
	}
	pipeline, err := prep.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}
	result, err := pipeline.Train(table, textCol, labelCol)
	if err != nil {
		return err
	}
	if err := result.Model.Save(modelPath); err != nil {
		return err
	}
	logger.Info("model saved", zap.String("path", modelPath))
	fmt.Print(result.Report.String())
	return nil
}
