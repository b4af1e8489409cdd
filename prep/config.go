package prep

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config aggregates the runtime settings of the pipeline. All fields
// have working defaults; a config file is optional.
type Config struct {
	Anchors       []string   `json:"anchors"`
	SegmentWindow int        `json:"segmentWindow"`
	FallbackLabel Label      `json:"fallbackLabel"`
	MarkersPath   string     `json:"markersPath"`
	Fit           FitOptions `json:"fit"`
	CVFolds       int        `json:"cvFolds"`
	CVSeed        int64      `json:"cvSeed"`
	// MinConfidence only feeds the anomaly summary; it never changes
	// a predicted label.
	MinConfidence float64 `json:"minConfidence"`
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if len(c.Anchors) == 0 {
		c.Anchors = defaultAnchors()
	}
	if c.SegmentWindow <= 0 {
		c.SegmentWindow = defaultSegmentWindow
	}
	if c.FallbackLabel == "" {
		c.FallbackLabel = LabelIntermediate
	}
	c.Fit.ApplyDefaults()
	if c.CVFolds <= 0 {
		c.CVFolds = 5
	}
	if c.CVSeed == 0 {
		c.CVSeed = 42
	}
	if c.MinConfidence == 0 {
		c.MinConfidence = 0.5
	}
}

// LoadConfig loads configuration from the given path. A missing file
// is not an error: the defaults are returned.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		cfg.ApplyDefaults()
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		return errors.New("config path is required")
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
