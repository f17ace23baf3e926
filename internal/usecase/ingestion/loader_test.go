package ingestion

import (
	"errors"
	"strings"
	"testing"

	"github.com/achitaan/AR-diagass/internal/entity"
)

func TestExtractPlainText(t *testing.T) {
	for _, name := range []string{"notes.txt", "guide.md"} {
		text, err := extractText(name, []byte("Ice the joint for twenty minutes."))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if text != "Ice the joint for twenty minutes." {
			t.Errorf("%s: content altered: %q", name, text)
		}
	}
}

func TestExtractCSV(t *testing.T) {
	data := []byte("exercise,region,sets\nwall slide,shoulder,3\nbridge,lower back,2\n")

	text, err := extractText("plan.csv", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "exercise: wall slide") {
		t.Errorf("header context lost: %q", text)
	}
	if !strings.Contains(text, "region: lower back") {
		t.Errorf("row value lost: %q", text)
	}
}

func TestExtractCSVEmpty(t *testing.T) {
	if _, err := extractText("empty.csv", []byte("")); !errors.Is(err, entity.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	data := []byte(`{"condition":"tennis elbow","severity":3,"advice":{"rest":"two weeks"}}`)

	text, err := extractText("cases.json", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "condition: tennis elbow") {
		t.Errorf("string field lost: %q", text)
	}
	if !strings.Contains(text, "advice.rest: two weeks") {
		t.Errorf("nested field not flattened: %q", text)
	}
	if !strings.Contains(text, "severity: 3") {
		t.Errorf("numeric field lost: %q", text)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	if _, err := extractText("scan.pdf", []byte("%PDF")); !errors.Is(err, entity.ErrUnsupportedFileType) {
		t.Errorf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestExtractInvalidJSON(t *testing.T) {
	if _, err := extractText("broken.json", []byte("{not json")); err == nil {
		t.Error("expected error for malformed json")
	}
}
