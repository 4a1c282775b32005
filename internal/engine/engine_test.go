// internal/engine/engine_test.go
package engine

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"podium/internal/debate"
	"podium/internal/topics"
)

func testInput(name debate.FormatName, interruptions, factCheck bool, participants ...string) debate.Input {
	return debate.Input{
		Topic:        "Climate Change",
		Participants: participants,
		Format: debate.Format{
			Name:                 name,
			TimePerTurn:          60,
			InterruptionsEnabled: interruptions,
			FactCheckEnabled:     factCheck,
			ModeratorControl:     debate.ControlModerate,
		},
	}
}

func testOrchestrator(opts Options) *Orchestrator {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	return New(nil, nil, opts)
}

func TestRunReachesExactTurnCap(t *testing.T) {
	o := testOrchestrator(Options{})
	rec, err := o.Run(context.Background(), testInput(debate.HeadToHead, false, true, "biden", "trump"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(rec.TurnHistory) != 8 {
		t.Fatalf("got %d turns, want exactly 8", len(rec.TurnHistory))
	}
	for i := 1; i < len(rec.TurnHistory); i++ {
		if rec.TurnHistory[i].Number < rec.TurnHistory[i-1].Number {
			t.Errorf("turn numbers decrease at index %d: %v -> %v",
				i, rec.TurnHistory[i-1].Number, rec.TurnHistory[i].Number)
		}
	}
	if len(rec.ModeratorNotes) == 0 || !strings.Contains(rec.ModeratorNotes[0].Message, "Welcome") {
		t.Error("first moderator note is not the introduction")
	}
}

func TestHeadToHeadAlternation(t *testing.T) {
	o := testOrchestrator(Options{})
	rec, err := o.Run(context.Background(), testInput(debate.HeadToHead, false, true, "biden", "trump"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"biden", "trump"}
	for i, turn := range rec.TurnHistory {
		if turn.IsInterruption {
			t.Fatalf("interruption recorded with interruptions disabled: %+v", turn)
		}
		if turn.Speaker != want[i%2] {
			t.Errorf("turn %d speaker = %q, want %q", i, turn.Speaker, want[i%2])
		}
	}
}

func TestForcedInterruptionsAreHalfNumbered(t *testing.T) {
	o := testOrchestrator(Options{InterruptionChance: 1})
	rec, err := o.Run(context.Background(), testInput(debate.HeadToHead, true, false, "biden", "trump"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(rec.TurnHistory) != 8 {
		t.Fatalf("got %d turns, want the cap to hold at 8", len(rec.TurnHistory))
	}
	wantNumbers := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}
	for i, turn := range rec.TurnHistory {
		if turn.Number != wantNumbers[i] {
			t.Errorf("turn %d number = %v, want %v", i, turn.Number, wantNumbers[i])
		}
		if turn.IsInterruption != (i%2 == 1) {
			t.Errorf("turn %d IsInterruption = %v", i, turn.IsInterruption)
		}
		if turn.IsInterruption {
			prev := rec.TurnHistory[i-1]
			if turn.Interrupted != prev.Speaker {
				t.Errorf("turn %d interrupted %q, want %q", i, turn.Interrupted, prev.Speaker)
			}
			if turn.Speaker == prev.Speaker {
				t.Errorf("turn %d: speaker interrupted themselves", i)
			}
		}
	}
}

func TestFactChecksEmptyWhenDisabled(t *testing.T) {
	o := testOrchestrator(Options{})
	rec, err := o.Run(context.Background(), testInput(debate.TownHall, false, false, "biden", "trump"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rec.FactChecks) != 0 {
		t.Errorf("got %d fact checks with fact-checking disabled", len(rec.FactChecks))
	}
	if strings.Contains(rec.ModeratorNotes[0].Message, "fact-checked") {
		t.Error("introduction announces fact-checking while disabled")
	}
}

func TestTopicRotatesAtIntervalBoundary(t *testing.T) {
	o := testOrchestrator(Options{})
	rec, err := o.Run(context.Background(), testInput(debate.Panel, false, true, "biden", "trump", "sanders"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var changes []debate.Note
	for _, note := range rec.ModeratorNotes {
		if note.TopicChange {
			changes = append(changes, note)
		}
	}
	if len(changes) != 1 {
		t.Fatalf("got %d topic changes over 8 turns with interval 4, want 1", len(changes))
	}

	curated := topics.Subtopics("Climate Change")
	found := false
	for _, sub := range curated {
		if changes[0].NewTopic == sub {
			found = true
		}
	}
	if !found {
		t.Errorf("rotated to %q, not a climate change subtopic", changes[0].NewTopic)
	}

	// Turns 5 through 8 happen under the rotated subtopic.
	for _, turn := range rec.TurnHistory[4:] {
		if turn.Subtopic != changes[0].NewTopic {
			t.Errorf("turn %v subtopic = %q, want %q", turn.Number, turn.Subtopic, changes[0].NewTopic)
		}
	}
	if len(rec.SubtopicsCovered) != 2 {
		t.Errorf("subtopics covered = %v, want topic plus one rotation", rec.SubtopicsCovered)
	}
}

type fixedScorer struct{ accuracy float64 }

func (s fixedScorer) Score(string) float64 { return s.accuracy }

func TestLowAccuracyClaimsGetCorrections(t *testing.T) {
	o := testOrchestrator(Options{Scorer: fixedScorer{accuracy: 0.3}})
	rec, err := o.Run(context.Background(), testInput(debate.HeadToHead, false, true, "biden", "trump"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(rec.FactChecks) == 0 {
		t.Fatal("no fact checks recorded from stock statements")
	}
	for _, fc := range rec.FactChecks {
		for _, claim := range fc.Claims {
			if claim.Rating != "PARTIALLY FALSE" {
				t.Errorf("claim rating = %q at accuracy 0.3, want PARTIALLY FALSE", claim.Rating)
			}
			if claim.CorrectedInfo == "" {
				t.Errorf("claim %q below threshold has no correction", claim.Statement)
			}
			if len(claim.Sources) == 0 {
				t.Errorf("claim %q has no sources", claim.Statement)
			}
		}
	}
}

type failingRunner struct {
	calls int
}

func (f *failingRunner) Run(_ context.Context, s *debate.State) error {
	f.calls++
	s.AppendTurn("ghost", "partial progress before the failure", nil, false)
	return errors.New("graph blew up")
}

func TestFallbackEngagesOnPrimaryFailure(t *testing.T) {
	o := testOrchestrator(Options{})
	primary := &failingRunner{}
	o.primary = primary

	rec, err := o.Run(context.Background(), testInput(debate.HeadToHead, false, true, "biden", "trump"))
	if err != nil {
		t.Fatalf("Run() error = %v, fallback should have absorbed the failure", err)
	}
	if primary.calls != 1 {
		t.Errorf("primary runner called %d times, want 1", primary.calls)
	}
	if len(rec.TurnHistory) != 8 {
		t.Fatalf("got %d turns from fallback, want 8", len(rec.TurnHistory))
	}
	for _, turn := range rec.TurnHistory {
		if turn.Speaker == "ghost" {
			t.Error("fallback record carries state from the failed graph run")
		}
	}
}

func TestSimpleRunnerMatchesPolicy(t *testing.T) {
	o := testOrchestrator(Options{})
	s := debate.NewState(testInput(debate.HeadToHead, false, true, "biden", "trump"))

	if err := o.fallback.Run(context.Background(), s); err != nil {
		t.Fatalf("SimpleRunner error = %v", err)
	}
	if len(s.TurnHistory) != 8 {
		t.Fatalf("got %d turns, want 8", len(s.TurnHistory))
	}
	want := []string{"biden", "trump"}
	for i, turn := range s.TurnHistory {
		if turn.Speaker != want[i%2] {
			t.Errorf("turn %d speaker = %q, want %q", i, turn.Speaker, want[i%2])
		}
	}
}

func TestRunValidation(t *testing.T) {
	o := testOrchestrator(Options{})

	in := testInput(debate.HeadToHead, false, true, "biden")
	if _, err := o.Run(context.Background(), in); err == nil {
		t.Error("Run() accepted a single participant")
	}

	in = testInput(debate.FormatName("cage_match"), false, true, "biden", "trump")
	if _, err := o.Run(context.Background(), in); err == nil {
		t.Error("Run() accepted an unknown format")
	}
}

func TestCustomTurnCap(t *testing.T) {
	o := testOrchestrator(Options{MaxTurns: 4})
	rec, err := o.Run(context.Background(), testInput(debate.Panel, false, true, "biden", "trump", "sanders"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rec.TurnHistory) != 4 {
		t.Errorf("got %d turns with a cap of 4", len(rec.TurnHistory))
	}
}
