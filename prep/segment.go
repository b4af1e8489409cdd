package prep

import "strings"

// defaultAnchors locate the cleanliness sentence inside a full report.
// Order matters: the most specific spelling is tried first. The
// truncated Turkish forms absorb the suffix variants seen in practice
// (temizligi / temizlik / temizli...).
func defaultAnchors() []string {
	return []string{
		"kolon temizligi",
		"kolon temizlig",
		"kolon temizlik",
		"kolon temizli",
		"bowel preparation",
		"bowel prep",
		"colon cleansing",
	}
}

// defaultSegmentWindow bounds the extracted segment when no sentence
// boundary follows the anchor, and sizes the head fallback.
const defaultSegmentWindow = 100

// ExtractSegment returns the part of a report that describes bowel
// cleanliness. The text is normalized, then scanned for the first
// anchor; the segment runs from the anchor to the next period, or for
// window runes when no period follows. When no anchor is found the
// first window runes of the normalized report are returned (head
// fallback), so downstream stages always see deterministic input.
// An empty report yields an empty segment.
func ExtractSegment(text string, anchors []string, window int) string {
	if len(anchors) == 0 {
		anchors = defaultAnchors()
	}
	if window <= 0 {
		window = defaultSegmentWindow
	}
	normed := NormalizeText(text)
	if normed == "" {
		return ""
	}
	idx := -1
	for _, anchor := range anchors {
		if i := strings.Index(normed, anchor); i >= 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return truncateRunes(normed, window)
	}
	rest := normed[idx:]
	if end := strings.IndexByte(rest, '.'); end >= 0 {
		return rest[:end]
	}
	return truncateRunes(rest, window)
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
