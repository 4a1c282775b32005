// internal/engine/nodes.go
// The six debate nodes shared by both runners. Each node mutates the
// debate state; routing between them lives in the route* methods.
package engine

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"podium/internal/debate"
	"podium/internal/factcheck"
	"podium/internal/interrupt"
	"podium/internal/knowledge"
	"podium/internal/memory"
	"podium/internal/moderator"
	"podium/internal/persona"
	"podium/internal/topics"
)

const (
	nodeInitialize   = "initialize"
	nodeModerator    = "moderator"
	nodeDebater      = "debater"
	nodeFactChecker  = "fact_checker"
	nodeInterruption = "interruption_handler"
	nodeTopicManager = "topic_manager"
)

// deps bundles the collaborators every node draws on. Both runners share
// one deps value, so behavior is identical regardless of which runner
// executes.
type deps struct {
	responder  persona.Responder
	retriever  knowledge.Retriever
	mod        *moderator.Moderator
	topicMgr   *topics.Manager
	interrupts *interrupt.Controller
	checker    *factcheck.Checker
	log        *zap.Logger
}

func (d *deps) initializeNode(_ context.Context, s *debate.State) error {
	if len(s.Participants) == 0 {
		return errors.New("debate has no participants")
	}
	if s.CurrentSpeaker == "" {
		s.CurrentSpeaker = s.Participants[0]
		s.SpeakingQueue = append([]string(nil), s.Participants[1:]...)
	}
	d.log.Debug("debate initialized",
		zap.String("topic", s.Topic),
		zap.String("format", string(s.Format.Name)),
		zap.Strings("participants", s.Participants))
	return nil
}

// moderatorNode narrates and rotates the speaking order. The closing
// announcement lands one turn before the cap so the last speaker knows
// to wrap up.
func (d *deps) moderatorNode(_ context.Context, s *debate.State) error {
	if d.mod.Done(s) {
		return nil
	}
	d.mod.Step(s)
	if len(s.TurnHistory) == d.mod.MaxTurns()-1 {
		s.AppendNote(moderator.Closing(s.Topic))
	}
	d.log.Debug("moderator step",
		zap.String("speaker", s.CurrentSpeaker),
		zap.Int("turns", len(s.TurnHistory)))
	return nil
}

// debaterNode produces the current speaker's statement. Responder
// failures never abort the debate; a stock response fills the turn.
func (d *deps) debaterNode(ctx context.Context, s *debate.State) error {
	speaker := s.CurrentSpeaker

	knowledgeText := ""
	if s.UseRAG {
		text, err := d.retriever.Retrieve(ctx, s.Topic, speaker)
		if err != nil {
			d.log.Warn("knowledge retrieval failed",
				zap.String("speaker", speaker), zap.Error(err))
		} else {
			knowledgeText = text
		}
	}

	maxLen := persona.MaxResponseLength(string(s.Format.Name))
	req := memory.BuildRequest(s, speaker, knowledgeText, maxLen)

	statement, err := d.responder.Respond(ctx, req)
	if err != nil || strings.TrimSpace(statement) == "" {
		if err != nil {
			d.log.Warn("responder failed, substituting stock response",
				zap.String("speaker", speaker), zap.Error(err))
		}
		statement, _ = persona.StockResponder{}.Respond(ctx, req)
	}
	statement = persona.Truncate(statement, maxLen)

	keyPoints := memory.RecordResponse(s, speaker, statement, req.AddressPoints)
	turn := s.AppendTurn(speaker, statement, keyPoints, knowledgeText != "")
	d.log.Debug("turn recorded",
		zap.Float64("turn", turn.Number), zap.String("speaker", speaker))

	d.interrupts.Maybe(s)
	return nil
}

// factCheckNode scores the claims in the turn just taken. A turn with no
// checkable claims leaves the record untouched.
func (d *deps) factCheckNode(_ context.Context, s *debate.State) error {
	if !s.Format.FactCheckEnabled {
		return nil
	}
	last := s.LastTurn()
	if last == nil || last.IsInterruption {
		return nil
	}
	if fc := d.checker.Check(*last); fc != nil {
		s.FactChecks = append(s.FactChecks, *fc)
		d.log.Debug("fact check recorded",
			zap.Float64("turn", fc.Turn), zap.Int("claims", len(fc.Claims)))
	}
	return nil
}

// interruptionNode turns a pending interruption flag into a half-numbered
// turn. The turn cap is a hard ceiling, so a flag raised on the final
// turn is dropped.
func (d *deps) interruptionNode(_ context.Context, s *debate.State) error {
	defer interrupt.Clear(s)
	if !s.InterruptionRequested || s.InterruptBy == "" {
		return nil
	}
	if d.mod.Done(s) {
		return nil
	}

	tail := persona.Interjection(s.InterruptBy)
	turn := s.AppendInterruption(s.InterruptBy, d.interrupts.Statement(s, tail))
	d.log.Debug("interruption recorded",
		zap.Float64("turn", turn.Number),
		zap.String("by", turn.Speaker),
		zap.String("interrupted", turn.Interrupted))
	return nil
}

func (d *deps) topicNode(_ context.Context, s *debate.State) error {
	if next, changed := d.topicMgr.Rotate(s); changed {
		d.log.Debug("subtopic rotated", zap.String("subtopic", next))
	}
	return nil
}

// Routing. The moderator owns the terminal check; the topic manager sits
// between the moderator and the debater on interval boundaries so speaker
// rotation happens exactly once per turn.

func (d *deps) routeModerator(s *debate.State) string {
	if d.mod.Done(s) {
		return End
	}
	if d.topicMgr.Due(s) {
		return nodeTopicManager
	}
	return nodeDebater
}

func (d *deps) routeTopic(s *debate.State) string {
	if d.mod.Done(s) {
		return End
	}
	return nodeDebater
}

func (d *deps) routeDebater(s *debate.State) string {
	if s.InterruptionRequested {
		return nodeInterruption
	}
	if s.Format.FactCheckEnabled {
		return nodeFactChecker
	}
	return d.routeTail(s)
}

func (d *deps) routeTail(s *debate.State) string {
	if d.mod.Done(s) {
		return End
	}
	return nodeModerator
}
