// internal/factcheck/checker.go
package factcheck

import (
	"math/rand"
	"regexp"
	"strings"
	"time"

	"podium/internal/debate"
)

// MaxCheckedClaims limits how many claims are scored per statement.
const MaxCheckedClaims = 2

// CorrectionThreshold is the accuracy below which a correction is attached.
const CorrectionThreshold = 0.45

// Scorer produces an accuracy score in [0,1] for a claim. The default
// implementation is a placeholder; a real verifier can be substituted
// behind the same interface.
type Scorer interface {
	Score(claim string) float64
}

// Checker extracts checkable claims from statements and scores them.
type Checker struct {
	scorer Scorer
	rng    *rand.Rand
}

// New returns a Checker with the placeholder random scorer.
func New(rng *rand.Rand) *Checker {
	return &Checker{scorer: &randomScorer{rng: rng}, rng: rng}
}

// NewWithScorer returns a Checker using a caller-provided scorer.
func NewWithScorer(scorer Scorer, rng *rand.Rand) *Checker {
	return &Checker{scorer: scorer, rng: rng}
}

// Check fact-checks one turn's statement. It returns nil when no checkable
// claims are found, which is an expected outcome, not an error.
func (c *Checker) Check(turn debate.Turn) *debate.FactCheck {
	var checkable []string
	for _, claim := range ExtractClaims(turn.Statement) {
		if Checkable(claim) {
			checkable = append(checkable, claim)
		}
		if len(checkable) == MaxCheckedClaims {
			break
		}
	}
	if len(checkable) == 0 {
		return nil
	}

	claims := make([]debate.Claim, 0, len(checkable))
	for _, statement := range checkable {
		accuracy := clamp(c.scorer.Score(statement))
		claim := debate.Claim{
			Statement: statement,
			Accuracy:  accuracy,
			Rating:    Rating(accuracy),
			Sources:   c.pickSources(statement),
		}
		if accuracy < CorrectionThreshold {
			claim.CorrectedInfo = correction(statement)
		}
		claims = append(claims, claim)
	}

	return &debate.FactCheck{
		Turn:      turn.Number,
		Speaker:   turn.Speaker,
		Claims:    claims,
		Timestamp: time.Now(),
	}
}

// Rating bands, highest first. Accuracy at or above the threshold earns
// the label.
var ratingBands = []struct {
	threshold float64
	label     string
}{
	{0.95, "TRUE"},
	{0.80, "MOSTLY TRUE"},
	{0.65, "PARTIALLY TRUE"},
	{0.45, "MIXED"},
	{0.25, "PARTIALLY FALSE"},
	{0.10, "MOSTLY FALSE"},
}

// Rating maps an accuracy score to its label.
func Rating(accuracy float64) string {
	for _, band := range ratingBands {
		if accuracy >= band.threshold {
			return band.label
		}
	}
	return "FALSE"
}

// Ratings returns all labels in order from TRUE to FALSE.
func Ratings() []string {
	out := make([]string, 0, len(ratingBands)+1)
	for _, band := range ratingBands {
		out = append(out, band.label)
	}
	return append(out, "FALSE")
}

// correction picks a correction string keyed on the shape of the claim.
func correction(claim string) string {
	lower := strings.ToLower(claim)
	switch {
	case strings.Contains(lower, "never"):
		return "Correction: there are documented instances contrary to this claim."
	case strings.Contains(lower, "always"):
		return "Correction: there are exceptions to this statement."
	case containsAny(lower, "all ", "every ", "none "):
		return "Correction: the claim uses absolutes that don't reflect the nuanced reality."
	case containsAny(lower, "billion", "million", "trillion"):
		return "Correction: the figures cited are inaccurate or lack context."
	default:
		return "Correction: the claim contains inaccuracies or lacks important context."
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// randomScorer is the placeholder accuracy source. Political claims get a
// polarized but truth-leaning distribution; everything else is uniform in
// the upper half.
type randomScorer struct {
	rng *rand.Rand
}

var politicalWords = regexp.MustCompile(`(?i)\b(democrat|republican|liberal|conservative|biden|trump|obama|hoax|fake|corrupt|socialist|radical|election|taxes|border)\b`)

func (s *randomScorer) Score(claim string) float64 {
	if politicalWords.MatchString(claim) {
		switch roll := s.rng.Float64(); {
		case roll < 0.6:
			return 0.75 + s.rng.Float64()*0.25
		case roll < 0.9:
			return 0.45 + s.rng.Float64()*0.30
		default:
			return 0.20 + s.rng.Float64()*0.25
		}
	}
	return 0.5 + s.rng.Float64()*0.5
}
