// internal/memory/memory.go
// Per-participant debate memory: extracts key points from statements,
// tracks which opponent points each speaker has addressed, and builds the
// responder request for the next turn so rebuttals stay fresh.
package memory

import (
	"hash/fnv"
	"regexp"
	"strings"

	"podium/internal/debate"
	"podium/internal/persona"
)

const (
	// MaxKeyPoints caps extraction per statement.
	MaxKeyPoints = 3

	// ContextTurns is how many recent turns feed the next request.
	ContextTurns = 4

	// MaxAddressPoints caps the "address these" list in a request.
	MaxAddressPoints = 3

	// OwnPointsInRequest is the anti-repetition list length.
	OwnPointsInRequest = 3
)

// Key-point indicators are looser than fact-check claim detection: any
// policy stance, strong qualifier, comparison, or numeric reference makes
// a sentence a point worth rebutting.
var pointPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(support|oppose|propose|plan|will|must|demand|fight for|commit)\b`),
	regexp.MustCompile(`(?i)\b(historic|record|unprecedented|greatest|worst|crisis|existential|radical)\b`),
	regexp.MustCompile(`(?i)\b(more|less|better|worse|higher|lower) than\b`),
	regexp.MustCompile(`(?i)\b(always|never|all|none|every)\b`),
	regexp.MustCompile(`\d`),
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// ExtractKeyPoints pulls up to MaxKeyPoints short points from a statement
// in order of appearance.
func ExtractKeyPoints(statement string) []string {
	var points []string
	for _, sentence := range sentenceSplit.Split(statement, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 15 {
			continue
		}
		for _, re := range pointPatterns {
			if re.MatchString(sentence) {
				points = append(points, sentence)
				break
			}
		}
		if len(points) == MaxKeyPoints {
			break
		}
	}
	return points
}

// PointID hashes a point into the identifier tracked in
// PointsRespondedTo. Hashing is case- and whitespace-insensitive.
func PointID(point string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(strings.Join(strings.Fields(strings.ToLower(point)), " ")))
	return h.Sum64()
}

// BuildRequest assembles the responder request for the speaker's next
// statement: recent turns, unaddressed opponent points (prioritized), the
// speaker's own recent points, and any retrieved knowledge.
func BuildRequest(s *debate.State, speaker, knowledge string, maxLength int) persona.Request {
	mem := s.Memory[speaker]
	if mem == nil {
		mem = debate.NewMemory()
		s.Memory[speaker] = mem
	}

	recent := s.RecentTurns(ContextTurns)
	prior := make([]persona.Statement, 0, len(recent))
	for _, turn := range recent {
		prior = append(prior, persona.Statement{Speaker: turn.Speaker, Text: turn.Statement})
	}

	var unaddressed, addressed []persona.TargetPoint
	for i := len(recent) - 1; i >= 0; i-- {
		turn := recent[i]
		if turn.Speaker == speaker {
			continue
		}
		points := turn.KeyPoints
		if points == nil {
			points = ExtractKeyPoints(turn.Statement)
		}
		for _, point := range points {
			target := persona.TargetPoint{Opponent: turn.Speaker, Point: point}
			if mem.PointsRespondedTo[PointID(point)] {
				addressed = append(addressed, target)
			} else {
				unaddressed = append(unaddressed, target)
			}
		}
	}
	targets := append(unaddressed, addressed...)
	if len(targets) > MaxAddressPoints {
		targets = targets[:MaxAddressPoints]
	}

	return persona.Request{
		Identity:        speaker,
		Topic:           s.Topic,
		Subtopic:        s.CurrentSubtopic,
		PriorStatements: prior,
		AddressPoints:   targets,
		OwnRecentPoints: mem.RecentOwnPoints(OwnPointsInRequest),
		Knowledge:       knowledge,
		MaxLength:       maxLength,
	}
}

// RecordResponse merges a delivered statement back into the speaker's
// memory: its key points become own points, the targeted opponents and
// points are marked addressed, and the subtopic is marked covered. It
// returns the extracted key points for the turn record.
func RecordResponse(s *debate.State, speaker, statement string, targets []persona.TargetPoint) []string {
	mem := s.Memory[speaker]
	if mem == nil {
		mem = debate.NewMemory()
		s.Memory[speaker] = mem
	}

	points := ExtractKeyPoints(statement)
	for _, point := range points {
		mem.RecordOwnPoint(point)
	}
	for _, target := range targets {
		mem.OpponentsAddressed[target.Opponent] = true
		mem.PointsRespondedTo[PointID(target.Point)] = true
	}
	mem.TopicsAddressed[s.CurrentSubtopic] = true
	return points
}
