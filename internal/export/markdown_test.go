// internal/export/markdown_test.go
package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"podium/internal/debate"
)

func sampleRecord() *debate.Record {
	base := time.Date(2026, 2, 1, 14, 30, 0, 0, time.UTC)
	return &debate.Record{
		ID:           "abc123",
		Topic:        "Climate Change",
		Participants: []string{"biden", "trump"},
		CreatedAt:    base,
		TurnHistory: []debate.Turn{
			{Number: 0, Speaker: "biden", Statement: "We invested $360 billion in clean energy.", Timestamp: base.Add(time.Minute)},
			{Number: 0.5, Speaker: "trump", Statement: "That's simply not true!", Timestamp: base.Add(2 * time.Minute), IsInterruption: true, Interrupted: "biden"},
			{Number: 1, Speaker: "trump", Statement: "We had energy independence.", Timestamp: base.Add(3 * time.Minute)},
		},
		ModeratorNotes: []debate.Note{
			{Turn: 0, Message: "Welcome to today's debate.", Timestamp: base},
		},
		FactChecks: []debate.FactCheck{
			{Turn: 0, Speaker: "biden", Claims: []debate.Claim{{
				Statement: "We invested $360 billion in clean energy.",
				Accuracy:  0.88,
				Rating:    "MOSTLY TRUE",
				Sources:   []string{"Congressional Budget Office report (2022)"},
			}}},
		},
		SubtopicsCovered: []string{"Climate Change"},
	}
}

func TestMarkdown(t *testing.T) {
	result := Markdown(sampleRecord())

	// Check title
	if !strings.Contains(result, "# Debate: Climate Change") {
		t.Error("Expected title in output")
	}

	// Check metadata
	if !strings.Contains(result, "**Debate ID:** `abc123`") {
		t.Error("Expected debate ID in output")
	}
	if !strings.Contains(result, "**Participants:** biden, trump") {
		t.Error("Expected participants in output")
	}

	// Check turns and markers
	if !strings.Contains(result, "### Turn 0 - biden") {
		t.Error("Expected turn header in output")
	}
	if !strings.Contains(result, "### [Interruption] trump") {
		t.Error("Expected interruption header in output")
	}
	if !strings.Contains(result, "> We invested $360 billion in clean energy.") {
		t.Error("Expected statement blockquote in output")
	}
	if !strings.Contains(result, "**Fact check - MOSTLY TRUE** (0.88)") {
		t.Error("Expected fact check line in output")
	}
	if !strings.Contains(result, "**Moderator:** Welcome to today's debate.") {
		t.Error("Expected moderator note in output")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	rec := sampleRecord()
	data, err := JSON(rec)
	if err != nil {
		t.Fatalf("JSON() failed: %v", err)
	}

	var got debate.Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.ID != rec.ID || len(got.TurnHistory) != 3 {
		t.Errorf("record did not survive serialization: %+v", got)
	}
	if got.TurnHistory[1].Number != 0.5 || !got.TurnHistory[1].IsInterruption {
		t.Errorf("interruption turn mangled: %+v", got.TurnHistory[1])
	}
}

func TestWriteFileByExtension(t *testing.T) {
	dir := t.TempDir()
	rec := sampleRecord()

	jsonPath := filepath.Join(dir, "out.json")
	if err := WriteFile(rec, jsonPath); err != nil {
		t.Fatalf("WriteFile(json) failed: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Error("Expected valid JSON for .json extension")
	}

	mdPath := filepath.Join(dir, "out.md")
	if err := WriteFile(rec, mdPath); err != nil {
		t.Fatalf("WriteFile(md) failed: %v", err)
	}
	content, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), "# Debate:") {
		t.Error("Expected markdown for .md extension")
	}
}

func TestWriteDebate(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := WriteDebate(sampleRecord(), tmpDir)
	if err != nil {
		t.Fatalf("WriteDebate() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Expected file to exist at %s", path)
	}

	expectedFilename := "2026-02-01-climate-change.md"
	if filepath.Base(path) != expectedFilename {
		t.Errorf("Expected filename %q, got %q", expectedFilename, filepath.Base(path))
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Simple Name", "simple-name"},
		{"Test/Debate", "testdebate"},
		{"Debate #1!", "debate-1"},
		{"   spaces   ", "spaces"},
		{"Multiple---Hyphens", "multiple-hyphens"},
		{"", "debate"},
		{"This is a very long name that should be truncated to fifty characters maximum", "this-is-a-very-long-name-that-should-be-truncated-"},
	}

	for _, test := range tests {
		result := sanitizeFilename(test.input)
		if result != test.expected {
			t.Errorf("sanitizeFilename(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}
