package chunking

import (
	"strings"
	"testing"
)

func TestSplitShortTextIsSingleChunk(t *testing.T) {
	s := NewSplitter(900, 100)
	chunks := s.Split("Madde 1 - Bu Kanunun amacı çalışma hayatını düzenlemektir.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
}

func TestSplitEmptyTextReturnsNil(t *testing.T) {
	s := NewSplitter(900, 100)
	if chunks := s.Split(""); chunks != nil {
		t.Fatalf("expected nil, got %v", chunks)
	}
	if chunks := s.Split("   \n  "); len(chunks) != 0 {
		t.Fatalf("expected no chunks for whitespace, got %v", chunks)
	}
}

func TestSplitOverlapsConsecutiveWindows(t *testing.T) {
	text := strings.Repeat("a", 250)
	s := NewSplitter(100, 20)
	chunks := s.Split(text)
	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len([]rune(chunk)) > 100 {
			t.Fatalf("chunk %d exceeds window: %d runes", i, len([]rune(chunk)))
		}
	}
	// Reassembling without overlap must still cover the full text length.
	total := 0
	for _, chunk := range chunks {
		total += len([]rune(chunk))
	}
	if total < 250 {
		t.Fatalf("chunks lost content: %d runes total", total)
	}
}

func TestSplitPrefersLineBoundary(t *testing.T) {
	line := strings.Repeat("b", 90) + "\n"
	text := line + strings.Repeat("c", 120)
	s := NewSplitter(100, 0)
	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected split, got %v", chunks)
	}
	if chunks[0] != strings.Repeat("b", 90) {
		t.Fatalf("expected first chunk to end at line break, got %q", chunks[0])
	}
}

func TestSplitTurkishRunesAreNotBisected(t *testing.T) {
	text := strings.Repeat("ğüşiöçİı", 40)
	s := NewSplitter(50, 10)
	for i, chunk := range s.Split(text) {
		if strings.ContainsRune(chunk, '�') {
			t.Fatalf("chunk %d contains replacement rune: %q", i, chunk)
		}
	}
}

func TestNewSplitterNormalizesBadArguments(t *testing.T) {
	s := NewSplitter(0, -5)
	if s.ChunkSize != 900 || s.Overlap != 0 {
		t.Fatalf("unexpected defaults %+v", s)
	}
	s = NewSplitter(100, 200)
	if s.Overlap != 25 {
		t.Fatalf("expected overlap reduced to quarter, got %d", s.Overlap)
	}
}
