package prep

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MarkerSet holds the lexical cues the override engine matches against
// a normalized cleanliness segment. Users may override any field from
// a JSON file; fields left null keep the built-in defaults.
type MarkerSet struct {
	Adequacy   []string `json:"adequacy"`
	Negation   []string `json:"negation"`
	Inadequacy []string `json:"inadequacy"`
	Partial    []string `json:"partial"`
}

// defaultMarkerSet mirrors the study's lexicon with English
// supplements. Note that "yetersiz" does not contain "yeterli" and
// "inadequate" contains "adequate"; the negation guard on the adequacy
// rule handles the latter.
func defaultMarkerSet() MarkerSet {
	return MarkerSet{
		Adequacy:   []string{"yeterli", "adequate"},
		Negation:   []string{"yetersiz", "degildi", "degil", "inadequate"},
		Inadequacy: []string{"yetersiz", "degildi", "degil", "inadequate"},
		Partial:    []string{"subopt", "kismen", "yer yer", "yeryer", "partial"},
	}
}

// OverrideEngine evaluates deterministic lexical rules against a
// normalized segment. Rule order is fixed:
//
//  1. adequacy marker present, no negation and no partial marker -> Good
//  2. inadequacy marker present                                  -> Poor
//  3. partial marker present                                     -> Intermediate
//
// First match wins; no match defers to the statistical classifier.
// A segment carrying both adequacy and inadequacy cues therefore
// resolves to Poor (rule 1's guard blocks, rule 2 fires), and
// "kismen yeterli" resolves to Intermediate (rule 1 blocked by the
// partial cue, rule 3 fires).
type OverrideEngine struct {
	markers MarkerSet
}

// NewOverrideEngine compiles an engine from the given marker set.
// Empty fields fall back to the defaults.
func NewOverrideEngine(markers MarkerSet) *OverrideEngine {
	defaults := defaultMarkerSet()
	compiled := MarkerSet{
		Adequacy:   normalizeMarkers(markers.Adequacy, defaults.Adequacy),
		Negation:   normalizeMarkers(markers.Negation, defaults.Negation),
		Inadequacy: normalizeMarkers(markers.Inadequacy, defaults.Inadequacy),
		Partial:    normalizeMarkers(markers.Partial, defaults.Partial),
	}
	return &OverrideEngine{markers: compiled}
}

// Apply runs the rules over an already-normalized segment. It returns
// the forced label, the name of the rule that fired, and whether any
// rule matched. Total: never errors, empty segments match nothing.
func (e *OverrideEngine) Apply(segment string) (Label, string, bool) {
	if segment == "" {
		return "", "", false
	}
	if containsAny(segment, e.markers.Adequacy) &&
		!containsAny(segment, e.markers.Negation) &&
		!containsAny(segment, e.markers.Partial) {
		return LabelGood, "adequacy", true
	}
	if containsAny(segment, e.markers.Inadequacy) {
		return LabelPoor, "inadequacy", true
	}
	if containsAny(segment, e.markers.Partial) {
		return LabelIntermediate, "partial", true
	}
	return "", "", false
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func normalizeMarkers(custom, fallback []string) []string {
	src := custom
	if len(src) == 0 {
		src = fallback
	}
	seen := make(map[string]struct{}, len(src))
	out := make([]string, 0, len(src))
	for _, m := range src {
		normed := NormalizeText(m)
		if normed == "" {
			continue
		}
		if _, ok := seen[normed]; ok {
			continue
		}
		seen[normed] = struct{}{}
		out = append(out, normed)
	}
	return out
}

// EnsureMarkerFile writes the default marker set to the given path
// when the file does not exist yet, giving users a starting point for
// editing the lexicon outside of the binary.
func EnsureMarkerFile(path string) error {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return nil
	}
	clean = filepath.Clean(clean)
	if _, err := os.Stat(clean); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat marker file: %w", err)
	}
	if dir := filepath.Dir(clean); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create marker dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(defaultMarkerSet(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode markers: %w", err)
	}
	if err := os.WriteFile(clean, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write marker file: %w", err)
	}
	return nil
}

// LoadMarkerSet reads a marker override file and merges it over the
// defaults. An empty path returns the defaults unchanged.
func LoadMarkerSet(path string) (MarkerSet, error) {
	markers := defaultMarkerSet()
	clean := strings.TrimSpace(path)
	if clean == "" {
		return markers, nil
	}
	data, err := os.ReadFile(filepath.Clean(clean))
	if err != nil {
		return markers, fmt.Errorf("read marker file: %w", err)
	}
	var overrides MarkerSet
	if err := json.Unmarshal(data, &overrides); err != nil {
		return markers, fmt.Errorf("decode marker file: %w", err)
	}
	if overrides.Adequacy != nil {
		markers.Adequacy = overrides.Adequacy
	}
	if overrides.Negation != nil {
		markers.Negation = overrides.Negation
	}
	if overrides.Inadequacy != nil {
		markers.Inadequacy = overrides.Inadequacy
	}
	if overrides.Partial != nil {
		markers.Partial = overrides.Partial
	}
	return markers, nil
}
