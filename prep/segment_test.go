package prep

import (
	"strings"
	"testing"
)

func TestExtractSegmentAnchorToPeriod(t *testing.T) {
	text := "Sedasyon uygulandi. Kolon temizliği yeterliydi. Cekuma ulasildi."
	got := ExtractSegment(text, nil, 0)
	if got != "kolon temizligi yeterliydi" {
		t.Fatalf("segment = %q", got)
	}
}

func TestExtractSegmentNoPeriodUsesWindow(t *testing.T) {
	tail := strings.Repeat("x ", 120)
	got := ExtractSegment("kolon temizligi yeterli "+tail, nil, 0)
	if len([]rune(got)) != defaultSegmentWindow {
		t.Fatalf("window length = %d, want %d", len([]rune(got)), defaultSegmentWindow)
	}
	if !strings.HasPrefix(got, "kolon temizligi yeterli") {
		t.Fatalf("segment should start at anchor, got %q", got)
	}
}

func TestExtractSegmentHeadFallback(t *testing.T) {
	got := ExtractSegment("hasta sedasyon altinda islem yapildi", nil, 0)
	if got != "hasta sedasyon altinda islem yapildi" {
		t.Fatalf("fallback = %q", got)
	}

	long := strings.Repeat("a", 300)
	got = ExtractSegment(long, nil, 0)
	if len([]rune(got)) != defaultSegmentWindow {
		t.Fatalf("fallback length = %d", len([]rune(got)))
	}
}

func TestExtractSegmentEmptyReport(t *testing.T) {
	if got := ExtractSegment("", nil, 0); got != "" {
		t.Fatalf("empty report should yield empty segment, got %q", got)
	}
	if got := ExtractSegment("   \t ", nil, 0); got != "" {
		t.Fatalf("blank report should yield empty segment, got %q", got)
	}
}

func TestExtractSegmentAnchorVariants(t *testing.T) {
	for _, text := range []string{
		"KOLON TEMİZLİĞİ yeterliydi",
		"kolon temizlik durumu yeterli",
		"bowel preparation was adequate",
	} {
		got := ExtractSegment(text, nil, 0)
		if strings.HasPrefix(got, "hasta") || got == "" {
			t.Fatalf("anchor not found in %q (segment %q)", text, got)
		}
	}
}

func TestExtractSegmentCustomWindow(t *testing.T) {
	got := ExtractSegment("kolon temizligi cok kotu ve devam ediyor", nil, 18)
	if len([]rune(got)) != 18 {
		t.Fatalf("custom window = %d runes (%q)", len([]rune(got)), got)
	}
}
