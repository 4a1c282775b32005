// internal/debate/state.go
package debate

import (
	"time"

	"github.com/google/uuid"
)

// State is the single mutable record for one debate run. It is owned by
// the orchestrator for the lifetime of the run and discarded afterwards;
// nothing here is shared between runs.
type State struct {
	Topic            string
	Format           Format
	Participants     []string
	SpeakingQueue    []string
	CurrentSpeaker   string
	CurrentSubtopic  string
	SubtopicsCovered []string
	TurnHistory      []Turn
	ModeratorNotes   []Note
	FactChecks       []FactCheck
	Memory           map[string]*Memory

	InterruptionRequested bool
	InterruptBy           string

	UseRAG bool
	Trace  bool

	// TopicManagedAt records the turn count at which the topic manager
	// last ran, so the rotation interval fires once per boundary.
	TopicManagedAt int
}

// NewState initializes debate state from validated input. The first
// participant speaks first; the rest form the speaking queue.
func NewState(in Input) *State {
	s := &State{
		Topic:            in.Topic,
		Format:           in.Format,
		Participants:     append([]string(nil), in.Participants...),
		CurrentSubtopic:  in.Topic,
		SubtopicsCovered: []string{in.Topic},
		Memory:           make(map[string]*Memory, len(in.Participants)),
		UseRAG:           in.UseRAG,
		Trace:            in.Trace,
		TopicManagedAt:   -1,
	}

	queue := append([]string(nil), in.Participants...)
	if len(queue) > 0 {
		s.CurrentSpeaker = queue[0]
		queue = queue[1:]
	}
	s.SpeakingQueue = queue

	for _, p := range in.Participants {
		s.Memory[p] = NewMemory()
	}

	return s
}

// NormalTurns counts the non-interruption entries in the turn history.
// The next normal turn is numbered with this value.
func (s *State) NormalTurns() int {
	n := 0
	for _, t := range s.TurnHistory {
		if !t.IsInterruption {
			n++
		}
	}
	return n
}

// AppendTurn records a normal speaking turn and returns it.
func (s *State) AppendTurn(speaker, statement string, keyPoints []string, knowledgeUsed bool) Turn {
	t := Turn{
		Number:        float64(s.NormalTurns()),
		Speaker:       speaker,
		Statement:     statement,
		Subtopic:      s.CurrentSubtopic,
		Timestamp:     time.Now(),
		KeyPoints:     keyPoints,
		KnowledgeUsed: knowledgeUsed,
	}
	s.TurnHistory = append(s.TurnHistory, t)
	return t
}

// AppendInterruption records an interruption of the current speaker. Its
// number is the interrupted turn's number plus one half, keeping turn
// numbers non-decreasing.
func (s *State) AppendInterruption(interrupter, statement string) Turn {
	prev := 0.0
	for i := len(s.TurnHistory) - 1; i >= 0; i-- {
		if !s.TurnHistory[i].IsInterruption {
			prev = s.TurnHistory[i].Number
			break
		}
	}
	t := Turn{
		Number:         prev + 0.5,
		Speaker:        interrupter,
		Statement:      statement,
		Subtopic:       s.CurrentSubtopic,
		Timestamp:      time.Now(),
		IsInterruption: true,
		Interrupted:    s.CurrentSpeaker,
	}
	s.TurnHistory = append(s.TurnHistory, t)
	return t
}

// LastTurn returns the most recent turn, or nil if none exist.
func (s *State) LastTurn() *Turn {
	if len(s.TurnHistory) == 0 {
		return nil
	}
	return &s.TurnHistory[len(s.TurnHistory)-1]
}

// RecentTurns returns up to n of the most recent turns.
func (s *State) RecentTurns(n int) []Turn {
	if len(s.TurnHistory) <= n {
		return s.TurnHistory
	}
	return s.TurnHistory[len(s.TurnHistory)-n:]
}

// CoverSubtopic switches the current subtopic and records it as covered.
func (s *State) CoverSubtopic(subtopic string) {
	s.CurrentSubtopic = subtopic
	s.SubtopicsCovered = append(s.SubtopicsCovered, subtopic)
}

// RecentSubtopics returns the n most recently covered subtopics.
func (s *State) RecentSubtopics(n int) []string {
	if len(s.SubtopicsCovered) <= n {
		return s.SubtopicsCovered
	}
	return s.SubtopicsCovered[len(s.SubtopicsCovered)-n:]
}

// AppendNote records a moderator note at the current turn count.
func (s *State) AppendNote(message string) {
	s.ModeratorNotes = append(s.ModeratorNotes, Note{
		Turn:      float64(len(s.TurnHistory)),
		Message:   message,
		Timestamp: time.Now(),
	})
}

// AppendTopicChange records a topic-change note carrying old and new topics.
func (s *State) AppendTopicChange(message, oldTopic, newTopic string) {
	s.ModeratorNotes = append(s.ModeratorNotes, Note{
		Turn:        float64(len(s.TurnHistory)),
		Message:     message,
		Timestamp:   time.Now(),
		TopicChange: true,
		OldTopic:    oldTopic,
		NewTopic:    newTopic,
	})
}

// Record snapshots the state into the outbound record shape. Slices are
// copied so the record stays stable after the state is discarded.
func (s *State) Record() *Record {
	return &Record{
		ID:               uuid.NewString(),
		Topic:            s.Topic,
		Participants:     append([]string(nil), s.Participants...),
		TurnHistory:      append([]Turn(nil), s.TurnHistory...),
		FactChecks:       append([]FactCheck(nil), s.FactChecks...),
		ModeratorNotes:   append([]Note(nil), s.ModeratorNotes...),
		SubtopicsCovered: append([]string(nil), s.SubtopicsCovered...),
		CreatedAt:        time.Now(),
	}
}
