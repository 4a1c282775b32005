// internal/topics/topics.go
// Subtopic generation and rotation. Known debate topics get a curated
// subtopic list; anything else falls back to generic angles on the topic.
package topics

import (
	"fmt"
	"math/rand"
	"strings"

	"podium/internal/debate"
)

// DefaultInterval is how many turns pass between rotation checks.
const DefaultInterval = 4

// RecentWindow is how many recently covered subtopics are excluded from
// re-selection.
const RecentWindow = 3

var curated = map[string][]string{
	"climate change": {
		"Renewable Energy Implementation",
		"Carbon Taxation",
		"Paris Climate Agreement",
		"Green New Deal",
		"Climate Change Impacts on Agriculture",
		"Nuclear Power in the Green Transition",
	},
	"economy": {
		"Inflation and Consumer Prices",
		"Job Creation Policies",
		"Tax Reform",
		"Government Spending",
		"Trade Policies and Tariffs",
		"Small Business Support",
	},
	"healthcare": {
		"Universal Healthcare",
		"Prescription Drug Prices",
		"Medicare Expansion",
		"Healthcare for Veterans",
		"Mental Health Services",
		"Rural Healthcare Access",
	},
	"immigration": {
		"Border Security",
		"Path to Citizenship",
		"Refugee Policy",
		"DACA and Dreamers",
		"Skilled Immigration Reform",
		"Immigration Court System",
	},
	"foreign policy": {
		"Relations with China",
		"Russia and Eastern Europe",
		"Middle East Strategy",
		"NATO Alliances",
		"Trade Agreements",
		"Foreign Aid Programs",
	},
}

var genericAngles = []string{
	"Economic Impact",
	"Social Implications",
	"Historical Context",
	"Future Outlook",
	"International Perspective",
	"Policy Reform",
}

// Manager rotates the current subtopic on a fixed turn interval.
type Manager struct {
	interval   int
	rng        *rand.Rand
	candidates []string
}

// New returns a Manager that rotates every interval turns. A non-positive
// interval falls back to the default.
func New(interval int, rng *rand.Rand) *Manager {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Manager{interval: interval, rng: rng}
}

// Interval returns the rotation interval in turns.
func (m *Manager) Interval() int {
	return m.interval
}

// Due reports whether the rotation condition holds for the given state:
// at least interval turns since the last rotation. Interruption turns
// can step the history past an exact boundary, so this is a >= check,
// not a modulo.
func (m *Manager) Due(s *debate.State) bool {
	turns := len(s.TurnHistory)
	last := s.TopicManagedAt
	if last < 0 {
		last = 0
	}
	return turns > 0 && turns-last >= m.interval
}

// Candidates returns the subtopic list for a topic, generating it on
// first use.
func (m *Manager) Candidates(topic string) []string {
	if m.candidates == nil {
		m.candidates = Subtopics(topic)
	}
	return m.candidates
}

// Rotate selects the next subtopic for the debate, excluding the current
// subtopic and any among the most recently covered. It returns the new
// subtopic and true when a switch happened; when no eligible candidate
// exists the subtopic is left unchanged and false is returned, which is
// not an error.
func (m *Manager) Rotate(s *debate.State) (string, bool) {
	s.TopicManagedAt = len(s.TurnHistory)

	recent := make(map[string]bool, RecentWindow+1)
	recent[s.CurrentSubtopic] = true
	for _, covered := range s.RecentSubtopics(RecentWindow) {
		recent[covered] = true
	}

	var eligible []string
	for _, candidate := range m.Candidates(s.Topic) {
		if !recent[candidate] {
			eligible = append(eligible, candidate)
		}
	}
	if len(eligible) == 0 {
		return s.CurrentSubtopic, false
	}

	next := eligible[m.rng.Intn(len(eligible))]
	old := s.CurrentSubtopic
	s.CoverSubtopic(next)
	s.AppendTopicChange(fmt.Sprintf("Let's move on to discuss %s.", next), old, next)
	return next, true
}

// Subtopics returns the candidate subtopics for a main topic: the curated
// list when the topic is known, otherwise generic angles on the topic.
func Subtopics(topic string) []string {
	lower := strings.ToLower(topic)
	for key, list := range curated {
		if strings.Contains(lower, key) {
			return append([]string(nil), list...)
		}
	}
	out := make([]string, len(genericAngles))
	for i, angle := range genericAngles {
		out[i] = fmt.Sprintf("%s - %s", topic, angle)
	}
	return out
}
