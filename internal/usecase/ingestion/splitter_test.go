package ingestion

import (
	"strings"
	"testing"
)

func TestSplitShortText(t *testing.T) {
	s := NewSplitter(1000, 200)

	chunks := s.Split("A short note about ankle sprains.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "A short note about ankle sprains." {
		t.Errorf("short text altered: %q", chunks[0])
	}
}

func TestSplitEmptyText(t *testing.T) {
	s := NewSplitter(1000, 200)

	if chunks := s.Split(""); chunks != nil {
		t.Errorf("expected nil for empty input, got %v", chunks)
	}
	if chunks := s.Split("   \n\n  "); chunks != nil {
		t.Errorf("expected nil for whitespace input, got %v", chunks)
	}
}

func TestSplitRespectsChunkSize(t *testing.T) {
	s := NewSplitter(200, 40)

	paragraph := strings.Repeat("The rotator cuff stabilizes the shoulder joint. ", 4)
	text := strings.TrimSpace(strings.Repeat(paragraph+"\n\n", 6))

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 200 {
			t.Errorf("chunk %d exceeds size limit: %d chars", i, len(chunk))
		}
		if chunk == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	s := NewSplitter(40, 0)

	text := "First paragraph about knee pain.\n\nSecond paragraph about hip mobility."
	chunks := s.Split(text)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if !strings.Contains(chunks[0], "knee") || !strings.Contains(chunks[1], "hip") {
		t.Errorf("paragraphs not kept intact: %v", chunks)
	}
}

func TestSplitHandlesUnbrokenText(t *testing.T) {
	s := NewSplitter(50, 10)

	text := strings.Repeat("x", 180)
	chunks := s.Split(text)

	if len(chunks) < 3 {
		t.Fatalf("expected several chunks for unbroken text, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 50 {
			t.Errorf("chunk %d exceeds size limit: %d chars", i, len(chunk))
		}
	}

	// Every character of the input must survive somewhere.
	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	if total < len(text) {
		t.Errorf("content lost: input %d chars, chunks hold %d", len(text), total)
	}
}
