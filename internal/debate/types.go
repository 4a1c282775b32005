// internal/debate/types.go
package debate

import "time"

// FormatName identifies the debate format.
type FormatName string

const (
	TownHall   FormatName = "town_hall"
	HeadToHead FormatName = "head_to_head"
	Panel      FormatName = "panel"
)

// Valid reports whether the format name is one of the known formats.
func (f FormatName) Valid() bool {
	switch f {
	case TownHall, HeadToHead, Panel:
		return true
	}
	return false
}

// ModeratorControl sets how tightly the moderator runs the debate.
type ModeratorControl string

const (
	ControlStrict   ModeratorControl = "strict"
	ControlModerate ModeratorControl = "moderate"
	ControlMinimal  ModeratorControl = "minimal"
)

// Format is the immutable configuration for one debate.
type Format struct {
	Name                 FormatName       `json:"name" yaml:"name"`
	TimePerTurn          int              `json:"time_per_turn" yaml:"time_per_turn"`
	InterruptionsEnabled bool             `json:"interruptions_enabled" yaml:"interruptions_enabled"`
	FactCheckEnabled     bool             `json:"fact_check_enabled" yaml:"fact_check_enabled"`
	MaxRebuttalLength    int              `json:"max_rebuttal_length" yaml:"max_rebuttal_length"`
	ModeratorControl     ModeratorControl `json:"moderator_control" yaml:"moderator_control"`
}

// Input is the inbound contract for one debate run.
type Input struct {
	Topic        string   `json:"topic"`
	Participants []string `json:"participants"`
	Format       Format   `json:"format"`
	UseRAG       bool     `json:"use_rag"`
	Trace        bool     `json:"trace"`
}

// Turn is one entry in the turn history. Number is an integer for normal
// turns; an interruption during turn N is recorded as N+0.5.
type Turn struct {
	Number         float64   `json:"turn"`
	Speaker        string    `json:"speaker"`
	Statement      string    `json:"statement"`
	Subtopic       string    `json:"subtopic"`
	Timestamp      time.Time `json:"timestamp"`
	IsInterruption bool      `json:"is_interruption,omitempty"`
	Interrupted    string    `json:"interrupted,omitempty"`
	KeyPoints      []string  `json:"key_points,omitempty"`
	KnowledgeUsed  bool      `json:"knowledge_used,omitempty"`
}

// Claim is a single fact-checked claim inside a FactCheck entry.
type Claim struct {
	Statement     string   `json:"statement"`
	Accuracy      float64  `json:"accuracy"`
	Rating        string   `json:"rating"`
	CorrectedInfo string   `json:"corrected_info,omitempty"`
	Sources       []string `json:"sources,omitempty"`
}

// FactCheck holds the checked claims for one statement.
type FactCheck struct {
	Turn      float64   `json:"turn"`
	Speaker   string    `json:"speaker"`
	Claims    []Claim   `json:"claims"`
	Timestamp time.Time `json:"timestamp"`
}

// Note is a moderator narration entry.
type Note struct {
	Turn        float64   `json:"turn"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	TopicChange bool      `json:"topic_change,omitempty"`
	OldTopic    string    `json:"old_topic,omitempty"`
	NewTopic    string    `json:"new_topic,omitempty"`
}

// Memory is the per-participant record of what a debater has already
// addressed and said, used to drive non-repetitive rebuttals.
type Memory struct {
	OpponentsAddressed map[string]bool
	TopicsAddressed    map[string]bool
	PointsRespondedTo  map[uint64]bool
	OwnPointsMade      []string
}

// MaxOwnPoints caps the own-points list to recent history.
const MaxOwnPoints = 10

// NewMemory returns an empty per-participant memory.
func NewMemory() *Memory {
	return &Memory{
		OpponentsAddressed: make(map[string]bool),
		TopicsAddressed:    make(map[string]bool),
		PointsRespondedTo:  make(map[uint64]bool),
	}
}

// RecordOwnPoint appends a point the debater just made, keeping only the
// most recent MaxOwnPoints entries.
func (m *Memory) RecordOwnPoint(point string) {
	m.OwnPointsMade = append(m.OwnPointsMade, point)
	if len(m.OwnPointsMade) > MaxOwnPoints {
		m.OwnPointsMade = m.OwnPointsMade[len(m.OwnPointsMade)-MaxOwnPoints:]
	}
}

// RecentOwnPoints returns up to n of the debater's most recent points.
func (m *Memory) RecentOwnPoints(n int) []string {
	if len(m.OwnPointsMade) <= n {
		return m.OwnPointsMade
	}
	return m.OwnPointsMade[len(m.OwnPointsMade)-n:]
}

// Record is the JSON-serializable outbound contract of a completed debate.
type Record struct {
	ID               string      `json:"id"`
	Topic            string      `json:"topic"`
	Participants     []string    `json:"participants"`
	TurnHistory      []Turn      `json:"turn_history"`
	FactChecks       []FactCheck `json:"fact_checks"`
	ModeratorNotes   []Note      `json:"moderator_notes"`
	SubtopicsCovered []string    `json:"subtopics_covered"`
	CreatedAt        time.Time   `json:"created_at"`
}
