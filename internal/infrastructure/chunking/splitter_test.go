package chunking

import (
	"strings"
	"testing"
)

func TestSplitEmptyText(t *testing.T) {
	s := NewSplitter(100, 20)
	if got := s.Split(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestSplitShortTextIsSingleChunk(t *testing.T) {
	s := NewSplitter(100, 20)
	got := s.Split("short text")
	if len(got) != 1 || got[0] != "short text" {
		t.Fatalf("unexpected chunks: %v", got)
	}
}

func TestSplitProducesOverlappingChunks(t *testing.T) {
	s := NewSplitter(10, 4)
	text := "abcdefghijklmnopqrstuvwxyz"
	got := s.Split(text)

	if len(got) < 3 {
		t.Fatalf("expected at least 3 chunks, got %v", got)
	}
	if got[0] != "abcdefghij" {
		t.Fatalf("unexpected first chunk: %q", got[0])
	}
	// Step is size-overlap, so the next chunk starts 6 runes in.
	if got[1] != "ghijklmnop" {
		t.Fatalf("unexpected second chunk: %q", got[1])
	}
	last := got[len(got)-1]
	if !strings.HasSuffix(last, "z") {
		t.Fatalf("trailing partial chunk lost: %q", last)
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	s := NewSplitter(7, 3)
	text := strings.Repeat("lorem ipsum dolor sit amet ", 10)

	first := s.Split(text)
	second := s.Split(text)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("chunk %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestSplitHandlesMultibyteRunes(t *testing.T) {
	s := NewSplitter(4, 1)
	got := s.Split("привет мир")
	for _, chunk := range got {
		if n := len([]rune(chunk)); n > 4 {
			t.Fatalf("chunk %q exceeds size: %d runes", chunk, n)
		}
	}
}

func TestNewSplitterClampsOverlap(t *testing.T) {
	s := NewSplitter(100, 100)
	if s.Overlap >= s.ChunkSize {
		t.Fatalf("overlap %d not clamped below chunk size %d", s.Overlap, s.ChunkSize)
	}

	s = NewSplitter(0, -5)
	if s.ChunkSize != 1000 || s.Overlap != 0 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}
