package prep

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"endolab/coloprep/internal/tabular"
	"endolab/coloprep/procvars"
)

// PredictionColumn is the derived column appended to prediction output.
const PredictionColumn = "prep_quality_pred"

// Pipeline sequences extraction, vectorization, classification and
// rule overrides for both training and batch prediction. The loaded
// model is always passed in explicitly; the pipeline itself holds only
// configuration, the compiled rule engine and a logger.
type Pipeline struct {
	cfg    Config
	rules  *OverrideEngine
	logger *zap.Logger
}

// NewPipeline compiles the override engine (honoring a marker override
// file when configured) and returns a ready pipeline.
func NewPipeline(cfg Config, logger *zap.Logger) (*Pipeline, error) {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MarkersPath != "" {
		if err := EnsureMarkerFile(cfg.MarkersPath); err != nil {
			return nil, err
		}
	}
	markers, err := LoadMarkerSet(cfg.MarkersPath)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:    cfg,
		rules:  NewOverrideEngine(markers),
		logger: logger,
	}, nil
}

// Config returns a copy of the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// TrainResult bundles the fitted model with training diagnostics.
type TrainResult struct {
	Model   *Model
	Report  CVReport
	Rows    int
	Dropped int
}

// Train fits the vectorizer and the linear classifier on labeled
// cleanliness phrases and reports cross-validated accuracy. Rows with
// an empty phrase or label are dropped; an unparseable label is a
// schema error and aborts the run.
func (p *Pipeline) Train(table *tabular.Table, textColumn, labelColumn string) (*TrainResult, error) {
	textIdx, err := table.Resolve(textColumn)
	if err != nil {
		return nil, err
	}
	labelIdx, err := table.Resolve(labelColumn)
	if err != nil {
		return nil, err
	}

	classes := Labels()
	phrases := make([]string, 0, len(table.Rows))
	y := make([]int, 0, len(table.Rows))
	dropped := 0
	for i, row := range table.Rows {
		text := table.Cell(row, textIdx)
		rawLabel := table.Cell(row, labelIdx)
		if text == "" || rawLabel == "" {
			dropped++
			continue
		}
		label, err := ParseLabel(rawLabel)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		phrases = append(phrases, text)
		y = append(y, classIndex(classes, label))
	}
	if len(phrases) == 0 {
		return nil, fmt.Errorf("no usable training rows (dropped %d)", dropped)
	}

	docs := NormalizeAll(phrases)
	report := CrossValidate(docs, y, classes, p.cfg.CVFolds, p.cfg.CVSeed, p.cfg.Fit)

	vectorizer := NewVectorizer()
	vectorizer.Fit(docs)
	classifier := FitLinear(vectorizer.TransformAll(docs), y, vectorizer.Dim(), classes, p.cfg.Fit)

	p.logger.Info("model trained",
		zap.Int("rows", len(phrases)),
		zap.Int("dropped", dropped),
		zap.Int("vocabulary", vectorizer.Dim()),
		zap.Float64("cv_accuracy", report.Accuracy),
	)
	return &TrainResult{
		Model: &Model{
			Version:    ModelVersion,
			Classes:    classes,
			Vectorizer: vectorizer,
			Classifier: classifier,
		},
		Report:  report,
		Rows:    len(phrases),
		Dropped: dropped,
	}, nil
}

// PredictOptions selects the input column and optional extras for a
// prediction batch.
type PredictOptions struct {
	TextColumn string
	Extract    bool // also run the procedural variable extractor
}

// BatchSummary aggregates per-row anomalies; individual rows never
// abort a batch.
type BatchSummary struct {
	RunID         string
	Rows          int
	EmptySegments int
	Fallbacks     int
	Overrides     int
	LowConfidence int
	Distribution  map[Label]int
}

// PredictResult holds one ResultRow per input row, in input order,
// plus procedural records when extraction was requested.
type PredictResult struct {
	Rows    []ResultRow
	Records []procvars.Record
	Summary BatchSummary
}

// Predict classifies every report in the table. Malformed or empty
// texts receive the configured fallback label and are only surfaced in
// the summary counts.
func (p *Pipeline) Predict(model *Model, table *tabular.Table, opts PredictOptions) (*PredictResult, error) {
	textIdx, err := table.Resolve(opts.TextColumn)
	if err != nil {
		return nil, err
	}
	result := &PredictResult{
		Rows: make([]ResultRow, 0, len(table.Rows)),
		Summary: BatchSummary{
			RunID:        uuid.NewString(),
			Rows:         len(table.Rows),
			Distribution: make(map[Label]int),
		},
	}
	if opts.Extract {
		result.Records = make([]procvars.Record, 0, len(table.Rows))
	}
	for _, row := range table.Rows {
		text := table.Cell(row, textIdx)
		result.Rows = append(result.Rows, p.classifyReport(model, text, &result.Summary))
		if opts.Extract {
			result.Records = append(result.Records, procvars.Extract(text))
		}
	}
	p.logger.Info("prediction batch complete",
		zap.String("run_id", result.Summary.RunID),
		zap.Int("rows", result.Summary.Rows),
		zap.Int("empty_segments", result.Summary.EmptySegments),
		zap.Int("fallbacks", result.Summary.Fallbacks),
		zap.Int("overrides", result.Summary.Overrides),
		zap.Int("low_confidence", result.Summary.LowConfidence),
	)
	return result, nil
}

// classifyReport is the per-row decision: segment extraction, the
// statistical model and the override rules. It is total; anomalies
// are recorded on the summary instead of failing the row.
func (p *Pipeline) classifyReport(model *Model, text string, summary *BatchSummary) ResultRow {
	segment := ExtractSegment(text, p.cfg.Anchors, p.cfg.SegmentWindow)
	row := ResultRow{Segment: segment}
	if segment == "" {
		summary.EmptySegments++
		summary.Fallbacks++
		row.Final = p.cfg.FallbackLabel
		summary.Distribution[row.Final]++
		return row
	}
	row.Model = model.Classify(segment)
	if label, rule, ok := p.rules.Apply(segment); ok {
		summary.Overrides++
		row.Rule = rule
		row.Final = label
	} else {
		row.Final = row.Model.Label
		if row.Model.Confidence() < p.cfg.MinConfidence {
			summary.LowConfidence++
		}
	}
	summary.Distribution[row.Final]++
	return row
}

// AssembleOutput builds the output table: all original columns in the
// original row order, the prediction column, and the procedural
// variable columns when extraction ran.
func AssembleOutput(table *tabular.Table, result *PredictResult) *tabular.Table {
	out := table.Clone()
	labels := make([]string, len(result.Rows))
	for i, row := range result.Rows {
		labels[i] = row.Final.String()
	}
	out.AppendColumn(PredictionColumn, labels)
	if result.Records != nil {
		for ci, name := range procvars.Columns() {
			values := make([]string, len(result.Records))
			for ri, rec := range result.Records {
				values[ri] = rec.Values()[ci]
			}
			out.AppendColumn(name, values)
		}
	}
	return out
}

// DistributionString renders the label distribution in severity order
// for the end-of-run summary.
func (s BatchSummary) DistributionString() string {
	out := ""
	for _, label := range Labels() {
		if out != "" {
			out += " "
		}
		out += label.String() + "=" + strconv.Itoa(s.Distribution[label])
	}
	return out
}
