// internal/interrupt/interrupt_test.go
package interrupt

import (
	"math/rand"
	"strings"
	"testing"

	"podium/internal/debate"
)

func newState(control debate.ModeratorControl, allow bool) *debate.State {
	return debate.NewState(debate.Input{
		Topic:        "Climate Change",
		Participants: []string{"biden", "trump"},
		Format: debate.Format{
			Name:                 debate.HeadToHead,
			InterruptionsEnabled: allow,
			ModeratorControl:     control,
			MaxRebuttalLength:    250,
		},
	})
}

func TestMaybeRespectsFormatGates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	always := New(1.0, rng)

	tests := []struct {
		name    string
		state   *debate.State
		allowed bool
	}{
		{"disabled", newState(debate.ControlModerate, false), false},
		{"strict moderator", newState(debate.ControlStrict, true), false},
		{"moderate", newState(debate.ControlModerate, true), true},
		{"minimal", newState(debate.ControlMinimal, true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := always.Maybe(tt.state); got != tt.allowed {
				t.Errorf("Maybe = %v, want %v", got, tt.allowed)
			}
			if tt.allowed && tt.state.InterruptBy == tt.state.CurrentSpeaker {
				t.Error("interrupter is the current speaker")
			}
			if !tt.allowed && tt.state.InterruptionRequested {
				t.Error("flags set despite gate")
			}
		})
	}
}

func TestMaybeNeverFiresAtZeroDraw(t *testing.T) {
	// chance > 0 but drawn value always above it
	c := &Controller{chance: 0.0000001, rng: rand.New(rand.NewSource(42))}
	s := newState(debate.ControlModerate, true)
	fired := 0
	for i := 0; i < 100; i++ {
		if c.Maybe(s) {
			fired++
			Clear(s)
		}
	}
	if fired > 1 {
		t.Errorf("near-zero chance fired %d/100 times", fired)
	}
}

func TestMaybeExcludesCurrentSpeaker(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	always := New(1.0, rng)
	s := debate.NewState(debate.Input{
		Topic:        "Economy",
		Participants: []string{"biden", "trump", "sanders"},
		Format: debate.Format{
			Name:                 debate.Panel,
			InterruptionsEnabled: true,
			ModeratorControl:     debate.ControlModerate,
		},
	})
	for i := 0; i < 50; i++ {
		if !always.Maybe(s) {
			t.Fatal("chance 1.0 did not fire")
		}
		if s.InterruptBy == s.CurrentSpeaker {
			t.Fatal("picked the current speaker as interrupter")
		}
		Clear(s)
	}
}

func TestStatementBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c := New(1.0, rng)
	s := newState(debate.ControlModerate, true)
	s.Format.MaxRebuttalLength = 80

	text := c.Statement(s, "And another thing, the record is absolutely clear on this and everyone watching knows it.")
	if len(text) > 80 {
		t.Errorf("statement length %d exceeds cap 80", len(text))
	}
	if !strings.HasSuffix(text, "...") {
		t.Error("truncated statement missing ellipsis")
	}
}

func TestStatementMentionsSubtopic(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c := New(1.0, rng)
	s := newState(debate.ControlModerate, true)
	s.CurrentSubtopic = "Carbon Taxation"

	text := c.Statement(s, "")
	if !strings.Contains(text, "Carbon Taxation") {
		t.Errorf("statement %q does not reference the subtopic", text)
	}
}
