// internal/export/markdown.go
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"podium/internal/debate"
	"podium/internal/transcript"
)

// Markdown generates a formatted markdown document from a debate record.
func Markdown(rec *debate.Record) string {
	var sb strings.Builder

	// Title header
	sb.WriteString("# Debate: ")
	sb.WriteString(rec.Topic)
	sb.WriteString("\n\n")

	// Metadata section
	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("**Debate ID:** `%s`\n\n", rec.ID))
	sb.WriteString(fmt.Sprintf("**Created:** %s\n\n", rec.CreatedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString("**Participants:** ")
	sb.WriteString(strings.Join(rec.Participants, ", "))
	sb.WriteString("\n\n")

	if len(rec.SubtopicsCovered) > 0 {
		sb.WriteString("**Subtopics covered:**\n\n")
		for _, subtopic := range rec.SubtopicsCovered {
			sb.WriteString(fmt.Sprintf("- %s\n", subtopic))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
	sb.WriteString("## Transcript\n\n")

	checks := make(map[float64][]debate.FactCheck)
	for _, fc := range rec.FactChecks {
		checks[fc.Turn] = append(checks[fc.Turn], fc)
	}

	for _, ev := range transcript.Events(rec) {
		switch ev.Kind {
		case transcript.KindNote:
			writeNote(&sb, ev.Note)
		case transcript.KindTurn:
			writeTurn(&sb, ev.Turn)
			for _, fc := range checks[ev.Turn.Number] {
				if fc.Speaker == ev.Turn.Speaker {
					writeFactCheck(&sb, fc)
				}
			}
		}
	}

	// Footer
	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from Podium on %s*\n", time.Now().Format("2006-01-02 15:04:05")))

	return sb.String()
}

// JSON serializes the full record, indented for readability.
func JSON(rec *debate.Record) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}

// WriteFile writes the record to an explicit path. A .json extension
// selects JSON output; anything else gets markdown.
func WriteFile(rec *debate.Record, path string) error {
	var content []byte
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := JSON(rec)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		content = data
	} else {
		content = []byte(Markdown(rec))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// WriteDebate exports a record to a markdown file under baseDir/debates,
// named YYYY-MM-DD-topic.md, and returns the path.
func WriteDebate(rec *debate.Record, baseDir string) (string, error) {
	datePart := rec.CreatedAt.Format("2006-01-02")
	namePart := sanitizeFilename(rec.Topic)
	filename := fmt.Sprintf("%s-%s.md", datePart, namePart)

	debatesDir := filepath.Join(baseDir, "debates")
	if err := os.MkdirAll(debatesDir, 0755); err != nil {
		return "", fmt.Errorf("create debates directory: %w", err)
	}

	path := filepath.Join(debatesDir, filename)
	if err := os.WriteFile(path, []byte(Markdown(rec)), 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

func writeNote(sb *strings.Builder, note debate.Note) {
	if note.TopicChange {
		sb.WriteString(fmt.Sprintf("**[TOPIC CHANGE] Moderator:** %s\n\n", note.Message))
		return
	}
	sb.WriteString(fmt.Sprintf("**Moderator:** %s\n\n", note.Message))
}

func writeTurn(sb *strings.Builder, turn debate.Turn) {
	if turn.IsInterruption {
		sb.WriteString(fmt.Sprintf("### [Interruption] %s\n\n", turn.Speaker))
	} else {
		sb.WriteString(fmt.Sprintf("### Turn %g - %s\n\n", turn.Number, turn.Speaker))
	}

	for _, line := range strings.Split(strings.TrimSpace(turn.Statement), "\n") {
		sb.WriteString("> ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeFactCheck(sb *strings.Builder, fc debate.FactCheck) {
	for _, claim := range fc.Claims {
		sb.WriteString(fmt.Sprintf("- **Fact check - %s** (%.2f): %s\n", claim.Rating, claim.Accuracy, claim.Statement))
		if claim.CorrectedInfo != "" {
			sb.WriteString(fmt.Sprintf("  - %s\n", claim.CorrectedInfo))
		}
		for _, source := range claim.Sources {
			sb.WriteString(fmt.Sprintf("  - Source: %s\n", source))
		}
	}
	sb.WriteString("\n")
}

// sanitizeFilename removes/replaces characters unsuitable for filenames
func sanitizeFilename(name string) string {
	// Convert to lowercase
	name = strings.ToLower(name)

	// Replace spaces with hyphens
	name = strings.ReplaceAll(name, " ", "-")

	// Remove or replace problematic characters
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '-' || r == '_':
			sb.WriteRune(r)
		default:
			// Skip other characters
		}
	}

	result := sb.String()

	// Collapse multiple hyphens
	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}

	// Trim leading/trailing hyphens
	result = strings.Trim(result, "-")

	// Ensure non-empty
	if result == "" {
		result = "debate"
	}

	// Limit length
	if len(result) > 50 {
		result = result[:50]
	}

	return result
}
