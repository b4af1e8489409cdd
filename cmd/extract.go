package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"endolab/coloprep/internal/tabular"
	"endolab/coloprep/procvars"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract procedural variables without classification",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().String("input", "", "Table with full report texts (.csv/.tsv/.xlsx)")
	extractCmd.Flags().String("text-col", "", "Column holding the full report text (name or #N)")
	extractCmd.Flags().String("out", "", "Path for the output table")
	_ = extractCmd.MarkFlagRequired("input")
	_ = extractCmd.MarkFlagRequired("text-col")
	_ = extractCmd.MarkFlagRequired("out")
}

func runExtract(cmd *cobra.Command, args []string) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	inputPath, _ := cmd.Flags().GetString("input")
	textCol, _ := cmd.Flags().GetString("text-col")
	outPath, _ := cmd.Flags().GetString("out")

	table, err := tabular.Read(inputPath)
	if err != nil {
		return err
	}
	textIdx, err := table.Resolve(textCol)
	if err != nil {
		return err
	}

	records := make([]procvars.Record, len(table.Rows))
	for i, row := range table.Rows {
		records[i] = procvars.Extract(table.Cell(row, textIdx))
	}

	out := table.Clone()
	for ci, name := range procvars.Columns() {
		values := make([]string, len(records))
		for ri, rec := range records {
			values[ri] = rec.Values()[ci]
		}
		out.AppendColumn(name, values)
	}
	if err := tabular.Write(outPath, out); err != nil {
		return err
	}
	logger.Info("extraction saved", zap.String("path", outPath), zap.Int("rows", len(records)))
	return nil
}
