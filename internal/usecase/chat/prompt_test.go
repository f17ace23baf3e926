package chat

import (
	"strings"
	"testing"

	"github.com/achitaan/AR-diagass/internal/entity"
)

func TestBuildSystemPromptWithContext(t *testing.T) {
	chunks := []entity.RetrievedChunk{
		{Content: "Apply ice to acute sprains for the first 48 hours.", Score: 0.91},
		{Content: "Gentle range-of-motion exercises aid recovery.", Score: 0.84},
	}
	svg := "M 10 20 L 30 40"

	prompt := buildSystemPrompt(chunks, &svg)

	if !strings.Contains(prompt, "Reference context:") {
		t.Error("context section missing")
	}
	if !strings.Contains(prompt, "[1] Apply ice to acute sprains") {
		t.Error("first chunk missing or unnumbered")
	}
	if !strings.Contains(prompt, "[2] Gentle range-of-motion") {
		t.Error("second chunk missing or unnumbered")
	}
	if !strings.Contains(prompt, "M 10 20 L 30 40") {
		t.Error("AR annotation missing")
	}
	if !strings.Contains(prompt, "not a doctor") {
		t.Error("disclaimer rules missing")
	}
}

func TestBuildSystemPromptWithoutExtras(t *testing.T) {
	prompt := buildSystemPrompt(nil, nil)

	if strings.Contains(prompt, "Reference context:") {
		t.Error("context section rendered without chunks")
	}
	if strings.Contains(prompt, "Annotation path data") {
		t.Error("annotation section rendered without svg path")
	}
	if !strings.Contains(prompt, "educational information") {
		t.Error("base rules missing")
	}
}

func TestThreadTitleTruncation(t *testing.T) {
	long := strings.Repeat("pain ", 30)
	title := threadTitle(long)
	if len(title) != 60 {
		t.Errorf("expected 60-char title, got %d", len(title))
	}

	short := "My ankle hurts"
	if threadTitle(short) != short {
		t.Errorf("short title altered: %q", threadTitle(short))
	}
}
