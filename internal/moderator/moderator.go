// internal/moderator/moderator.go
// Moderator narration and turn scheduling: introduction on the first
// cycle, round-robin speaker rotation with per-format transition wording,
// and the termination check against the turn cap.
package moderator

import (
	"fmt"
	"strings"

	"podium/internal/debate"
)

// DefaultMaxTurns is the fixed turn cap when the caller sets none.
const DefaultMaxTurns = 8

// Transition phrasing varies only by format; everything else about the
// formats is identical, so a lookup table beats a type hierarchy here.
var transitions = map[debate.FormatName]string{
	debate.TownHall:   "Thank you. Now let's hear from %s on this issue.",
	debate.HeadToHead: "Your time is up. %s, your response?",
	debate.Panel:      "Let's get %s's perspective on this.",
}

// Moderator drives turn transitions and emits narration.
type Moderator struct {
	maxTurns int
}

// New returns a Moderator ending the debate after maxTurns entries in the
// turn history. Non-positive values fall back to the default cap.
func New(maxTurns int) *Moderator {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Moderator{maxTurns: maxTurns}
}

// MaxTurns returns the configured turn cap.
func (m *Moderator) MaxTurns() int {
	return m.maxTurns
}

// Done reports whether the debate has reached the turn cap. This is the
// only terminal condition; there is no early-exit path.
func (m *Moderator) Done(s *debate.State) bool {
	return len(s.TurnHistory) >= m.maxTurns
}

// Step runs one moderator cycle: the introduction on the first call,
// otherwise a round-robin rotation of the speaking queue with a
// transition line. Interruption aftermath suppresses rotation so the
// interrupted speaker order is preserved.
func (m *Moderator) Step(s *debate.State) {
	if len(s.TurnHistory) == 0 && len(s.ModeratorNotes) == 0 {
		s.AppendNote(Introduction(s))
		return
	}
	if s.InterruptionRequested {
		return
	}

	next := Advance(s)
	if next == "" {
		return
	}
	s.AppendNote(Transition(s.Format.Name, next))
}

// Advance pops the next speaker from the queue, pushes the current
// speaker to the tail, and returns the new current speaker.
func Advance(s *debate.State) string {
	var next string
	if len(s.SpeakingQueue) > 0 {
		next = s.SpeakingQueue[0]
		s.SpeakingQueue = s.SpeakingQueue[1:]
	} else if len(s.Participants) > 0 {
		next = s.Participants[0]
	} else {
		return ""
	}
	s.SpeakingQueue = append(s.SpeakingQueue, s.CurrentSpeaker)
	s.CurrentSpeaker = next
	return next
}

// Introduction names the topic, participants, time budget, and the
// enabled debate mechanics.
func Introduction(s *debate.State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Welcome to today's %s debate on the topic of '%s'. ", s.Format.Name, s.Topic)
	fmt.Fprintf(&sb, "Participating in this debate are %s. ", strings.Join(s.Participants, ", "))
	fmt.Fprintf(&sb, "Each speaker will have %d seconds per turn. ", s.Format.TimePerTurn)

	if s.Format.InterruptionsEnabled {
		sb.WriteString("Interruptions will be allowed during this debate. ")
	} else {
		sb.WriteString("No interruptions will be permitted. ")
	}
	if s.Format.FactCheckEnabled {
		sb.WriteString("Statements will be fact-checked for accuracy. ")
	}

	fmt.Fprintf(&sb, "Let's begin with %s.", s.CurrentSpeaker)
	return sb.String()
}

// Transition returns the speaker hand-off line for a format.
func Transition(format debate.FormatName, next string) string {
	if phrase, ok := transitions[format]; ok {
		return fmt.Sprintf(phrase, next)
	}
	return fmt.Sprintf("Now, %s.", next)
}

// Closing is the wrap-up note emitted when the debate nears the cap.
func Closing(topic string) string {
	return fmt.Sprintf("We're approaching the end of our debate on %s. Please offer your closing statements.", topic)
}
