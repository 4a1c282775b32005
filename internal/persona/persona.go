// internal/persona/persona.go
package persona

import (
	"context"
)

// Request carries everything a responder needs to produce one statement
// in a given identity's voice.
type Request struct {
	Identity string
	Topic    string
	Subtopic string

	// PriorStatements holds the most recent turns, formatted speaker-first.
	PriorStatements []Statement

	// AddressPoints are opponent points the speaker has not yet responded
	// to, highest priority first.
	AddressPoints []TargetPoint

	// OwnRecentPoints is the anti-repetition list of the speaker's last
	// few points.
	OwnRecentPoints []string

	// Knowledge is retrieved context for the topic/identity pair, possibly
	// empty.
	Knowledge string

	// MaxLength truncates the response, 0 for no limit.
	MaxLength int

	// Deflect asks the persona to dodge rather than answer directly.
	Deflect bool
}

// Statement is one prior turn, as seen by a responder.
type Statement struct {
	Speaker string
	Text    string
}

// TargetPoint is an opponent's point the speaker should address.
type TargetPoint struct {
	Opponent string
	Point    string
}

// Responder turns a request into a statement in the identity's voice.
// Implementations may call out to an inference service; the orchestrator
// treats failures as recoverable and substitutes a stock response.
type Responder interface {
	Respond(ctx context.Context, req Request) (string, error)
}

// Info describes a known debate identity.
type Info struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Registry holds the known identities in display order.
type Registry struct {
	infos map[string]Info
	order []string
}

// NewRegistry builds a registry from an ordered identity list.
func NewRegistry(infos []Info) *Registry {
	r := &Registry{infos: make(map[string]Info, len(infos))}
	for _, info := range infos {
		if _, ok := r.infos[info.ID]; ok {
			continue
		}
		r.infos[info.ID] = info
		r.order = append(r.order, info.ID)
	}
	return r
}

// Get returns the info for an identity and whether it is known.
func (r *Registry) Get(id string) (Info, bool) {
	info, ok := r.infos[id]
	return info, ok
}

// IDs returns all identity IDs in registration order.
func (r *Registry) IDs() []string {
	return r.order
}

// Count returns the number of registered identities.
func (r *Registry) Count() int {
	return len(r.order)
}

// Truncate trims a statement to max characters, appending an ellipsis
// when anything was cut.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// MaxResponseLength returns the expected statement length for a format.
func MaxResponseLength(format string) int {
	switch format {
	case "town_hall":
		return 400
	case "head_to_head":
		return 300
	case "panel":
		return 250
	default:
		return 350
	}
}
