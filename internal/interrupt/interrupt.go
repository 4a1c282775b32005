// internal/interrupt/interrupt.go
// Probabilistic interruption injection. After a debater's turn the
// controller may flag an interruption; the next orchestration step turns
// the flag into a half-numbered turn without changing the speaker.
package interrupt

import (
	"fmt"
	"math/rand"
	"strings"

	"podium/internal/debate"
)

// DefaultChance is the per-turn interruption probability.
const DefaultChance = 0.25

// MaxLength bounds an interruption statement when the format does not
// set a rebuttal cap.
const MaxLength = 200

var templates = []string{
	"That's simply not true! %[1]s is misleading the audience about %[2]s.",
	"I have to interject here. What %[1]s just said about %[2]s is completely wrong.",
	"If I may interrupt - the facts on %[2]s are being distorted here.",
	"The American people deserve the truth about %[2]s, not these talking points.",
	"Excuse me, but I can't let that statement about %[2]s go unchallenged.",
	"That's a mischaracterization of my position on %[2]s.",
	"Point of order! Those claims about %[2]s are simply not accurate.",
}

// Controller decides when interruptions happen and who interrupts.
type Controller struct {
	chance float64
	rng    *rand.Rand
}

// New returns a Controller with the given per-turn probability. A
// non-positive chance falls back to the default; chance >= 1 fires every
// eligible turn, which tests use to force interruptions.
func New(chance float64, rng *rand.Rand) *Controller {
	if chance <= 0 {
		chance = DefaultChance
	}
	return &Controller{chance: chance, rng: rng}
}

// Maybe draws the Bernoulli trial after a debater's turn and, on success,
// sets the interruption flags on the state. Interruptions require the
// format to allow them, a moderator not in strict control, and at least
// one opponent to do the interrupting.
func (c *Controller) Maybe(s *debate.State) bool {
	if !s.Format.InterruptionsEnabled || s.Format.ModeratorControl == debate.ControlStrict {
		return false
	}
	if len(s.Participants) < 2 {
		return false
	}
	if c.rng.Float64() >= c.chance {
		return false
	}

	var others []string
	for _, p := range s.Participants {
		if p != s.CurrentSpeaker {
			others = append(others, p)
		}
	}
	s.InterruptionRequested = true
	s.InterruptBy = others[c.rng.Intn(len(others))]
	return true
}

// Statement renders the interruption text from a random template plus a
// persona-flavored tail, bounded by the format's rebuttal cap.
func (c *Controller) Statement(s *debate.State, tail string) string {
	template := templates[c.rng.Intn(len(templates))]
	text := fmt.Sprintf(template, s.CurrentSpeaker, s.CurrentSubtopic)
	if tail != "" {
		text = text + " " + strings.TrimSpace(tail)
	}

	max := s.Format.MaxRebuttalLength
	if max <= 0 {
		max = MaxLength
	}
	if len(text) > max {
		text = text[:max-3] + "..."
	}
	return text
}

// Clear resets the interruption flags after the interruption turn has
// been recorded.
func Clear(s *debate.State) {
	s.InterruptionRequested = false
	s.InterruptBy = ""
}
