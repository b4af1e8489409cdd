package prep

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ModelVersion guards artifact compatibility. Loading an artifact with
// a different version aborts before any row is processed.
const ModelVersion = 1

// Model is the persisted classifier state: the fixed vocabulary with
// its IDF weights plus the trained linear model. It is an opaque
// artifact consumed only by this pipeline.
type Model struct {
	Version    int               `json:"version"`
	Classes    []Label           `json:"classes"`
	Vectorizer *Vectorizer       `json:"vectorizer"`
	Classifier *LinearClassifier `json:"classifier"`
}

// Classify runs vectorization and the linear model over an
// already-normalized segment.
func (m *Model) Classify(segment string) ClassifierOutput {
	return m.Classifier.Predict(m.Vectorizer.Transform(segment))
}

// Save writes the model atomically (tmp file + rename) so a crashed
// run never leaves a truncated artifact behind.
func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp model: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename model: %w", err)
	}
	return nil
}

// LoadModel reads and validates a persisted model artifact.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if m.Version != ModelVersion {
		return nil, fmt.Errorf("model version %d is not supported (want %d)", m.Version, ModelVersion)
	}
	if m.Vectorizer == nil || m.Classifier == nil || len(m.Classes) == 0 {
		return nil, fmt.Errorf("model file %s is incomplete", filepath.Base(path))
	}
	return &m, nil
}
