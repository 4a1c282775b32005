// internal/transcript/transcript.go
// Turns a finished debate record into a readable transcript: moderator
// narration and turns interleaved in order, fact checks attached to the
// turns they scored, duplicates suppressed.
package transcript

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"podium/internal/debate"
)

// dedupPrefix is how many leading characters of a statement identify a
// duplicate turn from the same speaker.
const dedupPrefix = 50

// Kind distinguishes the transcript entry types.
type Kind int

const (
	KindNote Kind = iota
	KindTurn
)

// Event is one transcript entry with its ordering keys.
type Event struct {
	Order float64
	At    time.Time
	Kind  Kind
	Note  debate.Note
	Turn  debate.Turn
}

// Render produces the plain-text transcript for a record.
func Render(rec *debate.Record) string {
	var sb strings.Builder

	sb.WriteString("DEBATE TRANSCRIPT\n")
	sb.WriteString("=================\n\n")
	fmt.Fprintf(&sb, "Topic: %s\n", rec.Topic)
	fmt.Fprintf(&sb, "Participants: %s\n", strings.Join(rec.Participants, ", "))
	fmt.Fprintf(&sb, "Date: %s\n\n", rec.CreatedAt.Format("2006-01-02 15:04"))

	checks := indexFactChecks(rec.FactChecks)
	for _, ev := range Events(rec) {
		switch ev.Kind {
		case KindNote:
			renderNote(&sb, ev.Note)
		case KindTurn:
			renderTurn(&sb, ev.Turn)
			for _, fc := range checks[checkKey(ev.Turn.Number, ev.Turn.Speaker)] {
				renderFactCheck(&sb, fc)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("-----------------\n")
	fmt.Fprintf(&sb, "Turns taken: %d\n", len(rec.TurnHistory))
	fmt.Fprintf(&sb, "Subtopics covered: %s\n", strings.Join(rec.SubtopicsCovered, "; "))
	fmt.Fprintf(&sb, "Statements fact-checked: %d\n", len(rec.FactChecks))
	return sb.String()
}

// Events merges notes and turns into display order: the introduction
// first, everything else by turn number with timestamps breaking ties.
// Duplicate turns are dropped; repeated topic-change notes for the same
// subtopic keep only the first.
func Events(rec *debate.Record) []Event {
	events := make([]Event, 0, len(rec.ModeratorNotes)+len(rec.TurnHistory))

	seenTopics := make(map[string]bool)
	for i, note := range rec.ModeratorNotes {
		if note.TopicChange {
			if seenTopics[note.NewTopic] {
				continue
			}
			seenTopics[note.NewTopic] = true
		}
		order := note.Turn
		if i == 0 {
			// The introduction precedes everything regardless of keys.
			order = -1
		}
		events = append(events, Event{Order: order, At: note.Timestamp, Kind: KindNote, Note: note})
	}

	seenTurns := make(map[string]bool)
	for _, turn := range rec.TurnHistory {
		key := turnKey(turn)
		if seenTurns[key] {
			continue
		}
		seenTurns[key] = true
		events = append(events, Event{Order: turn.Number, At: turn.Timestamp, Kind: KindTurn, Turn: turn})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Order != events[j].Order {
			return events[i].Order < events[j].Order
		}
		return events[i].At.Before(events[j].At)
	})
	return events
}

func turnKey(turn debate.Turn) string {
	statement := turn.Statement
	if len(statement) > dedupPrefix {
		statement = statement[:dedupPrefix]
	}
	return turn.Speaker + "|" + statement
}

func checkKey(number float64, speaker string) string {
	return fmt.Sprintf("%g|%s", number, speaker)
}

func indexFactChecks(checks []debate.FactCheck) map[string][]debate.FactCheck {
	index := make(map[string][]debate.FactCheck, len(checks))
	for _, fc := range checks {
		key := checkKey(fc.Turn, fc.Speaker)
		index[key] = append(index[key], fc)
	}
	return index
}

func renderNote(sb *strings.Builder, note debate.Note) {
	if note.TopicChange {
		fmt.Fprintf(sb, "[TOPIC CHANGE] MODERATOR: %s\n", note.Message)
		return
	}
	fmt.Fprintf(sb, "MODERATOR: %s\n", note.Message)
}

func renderTurn(sb *strings.Builder, turn debate.Turn) {
	if turn.IsInterruption {
		fmt.Fprintf(sb, "[INTERRUPTION] %s (interrupting %s): %s\n",
			strings.ToUpper(turn.Speaker), turn.Interrupted, turn.Statement)
		return
	}
	fmt.Fprintf(sb, "TURN %g - %s: %s\n", turn.Number, strings.ToUpper(turn.Speaker), turn.Statement)
}

func renderFactCheck(sb *strings.Builder, fc debate.FactCheck) {
	for _, claim := range fc.Claims {
		fmt.Fprintf(sb, "  [FACT CHECK] %s (%.2f): %s\n", claim.Rating, claim.Accuracy, claim.Statement)
		if claim.CorrectedInfo != "" {
			fmt.Fprintf(sb, "    %s\n", claim.CorrectedInfo)
		}
		if len(claim.Sources) > 0 {
			fmt.Fprintf(sb, "    Sources: %s\n", strings.Join(claim.Sources, "; "))
		}
	}
}
