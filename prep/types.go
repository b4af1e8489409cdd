package prep

import (
	"fmt"
	"strings"
)

// Label is the bowel-preparation quality category assigned to a report.
type Label string

const (
	// LabelGood marks adequate bowel preparation.
	LabelGood Label = "good"
	// LabelIntermediate marks partially adequate preparation.
	LabelIntermediate Label = "intermediate"
	// LabelPoor marks inadequate preparation.
	LabelPoor Label = "poor"
)

// Labels lists the categories in severity order, best first.
func Labels() []Label {
	return []Label{LabelGood, LabelIntermediate, LabelPoor}
}

// Severity orders labels for reporting. Lower is better.
func (l Label) Severity() int {
	switch l {
	case LabelGood:
		return 0
	case LabelIntermediate:
		return 1
	case LabelPoor:
		return 2
	}
	return 3
}

func (l Label) String() string { return string(l) }

// ParseLabel canonicalizes a gold label cell. Turkish study labels
// (iyi/orta/kötü) and their English equivalents are accepted.
func ParseLabel(raw string) (Label, error) {
	switch NormalizeText(strings.TrimSpace(raw)) {
	case "iyi", "good":
		return LabelGood, nil
	case "orta", "intermediate":
		return LabelIntermediate, nil
	case "kotu", "poor", "bad":
		return LabelPoor, nil
	}
	return "", fmt.Errorf("unknown label %q", raw)
}

// ClassifierOutput is the statistical model's verdict for one segment.
type ClassifierOutput struct {
	Label Label
	Probs map[Label]float64
}

// Confidence returns the probability of the predicted class.
func (o ClassifierOutput) Confidence() float64 {
	return o.Probs[o.Label]
}

// ResultRow records the full decision trail for a single report.
type ResultRow struct {
	Segment string
	Model   ClassifierOutput
	Rule    string // name of the override rule that fired, empty if none
	Final   Label
}
