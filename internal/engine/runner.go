// internal/engine/runner.go
// Debate execution: a graph-backed primary runner, a plain-loop fallback
// with the identical turn policy, and the orchestrator that owns the
// switch between them.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"podium/internal/debate"
	"podium/internal/factcheck"
	"podium/internal/interrupt"
	"podium/internal/knowledge"
	"podium/internal/moderator"
	"podium/internal/persona"
	"podium/internal/topics"
)

// Runner drives one debate over a prepared state.
type Runner interface {
	Run(ctx context.Context, s *debate.State) error
}

// GraphRunner executes the debate as a compiled state graph.
type GraphRunner struct {
	deps *deps
}

func (r *GraphRunner) Run(ctx context.Context, s *debate.State) error {
	g := NewGraph()
	g.AddNode(nodeInitialize, r.deps.initializeNode)
	g.AddNode(nodeModerator, r.deps.moderatorNode)
	g.AddNode(nodeDebater, r.deps.debaterNode)
	g.AddNode(nodeFactChecker, r.deps.factCheckNode)
	g.AddNode(nodeInterruption, r.deps.interruptionNode)
	g.AddNode(nodeTopicManager, r.deps.topicNode)

	g.SetEntryPoint(nodeInitialize)
	g.AddEdge(nodeInitialize, nodeModerator)
	g.AddConditionalEdges(nodeModerator, r.deps.routeModerator)
	g.AddConditionalEdges(nodeTopicManager, r.deps.routeTopic)
	g.AddConditionalEdges(nodeDebater, r.deps.routeDebater)
	g.AddConditionalEdges(nodeFactChecker, r.deps.routeTail)
	g.AddConditionalEdges(nodeInterruption, r.deps.routeTail)

	// Every turn costs at most four node executions.
	g.SetStepLimit(4*r.deps.mod.MaxTurns() + 16)

	compiled, err := g.Compile()
	if err != nil {
		return fmt.Errorf("compile debate graph: %w", err)
	}
	return compiled.Invoke(ctx, s)
}

// SimpleRunner drives the same nodes through an explicit loop. It exists
// as the fallback when graph execution fails: no routing machinery, same
// turn policy.
type SimpleRunner struct {
	deps *deps
}

func (r *SimpleRunner) Run(ctx context.Context, s *debate.State) error {
	if err := r.deps.initializeNode(ctx, s); err != nil {
		return err
	}
	for !r.deps.mod.Done(s) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.deps.moderatorNode(ctx, s); err != nil {
			return err
		}
		if r.deps.topicMgr.Due(s) {
			if err := r.deps.topicNode(ctx, s); err != nil {
				return err
			}
		}
		if err := r.deps.debaterNode(ctx, s); err != nil {
			return err
		}
		switch {
		case s.InterruptionRequested:
			if err := r.deps.interruptionNode(ctx, s); err != nil {
				return err
			}
		case s.Format.FactCheckEnabled:
			if err := r.deps.factCheckNode(ctx, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// Options configure an Orchestrator beyond its two collaborators. The
// zero value is usable: defaults fill in the cap, interval, chance,
// scorer, randomness, and a no-op logger.
type Options struct {
	MaxTurns           int
	TopicInterval      int
	InterruptionChance float64
	Scorer             factcheck.Scorer
	Rand               *rand.Rand
	Logger             *zap.Logger
}

// Orchestrator runs debates on the graph runner and falls back to the
// simplified runner when the graph fails.
type Orchestrator struct {
	primary  Runner
	fallback Runner
	log      *zap.Logger
}

// New wires an orchestrator. A nil responder means stock responses; a
// nil retriever disables knowledge retrieval.
func New(responder persona.Responder, retriever knowledge.Retriever, opts Options) *Orchestrator {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if responder == nil {
		responder = persona.StockResponder{}
	}
	if retriever == nil {
		retriever = knowledge.Nop{}
	}

	checker := factcheck.New(opts.Rand)
	if opts.Scorer != nil {
		checker = factcheck.NewWithScorer(opts.Scorer, opts.Rand)
	}

	d := &deps{
		responder:  responder,
		retriever:  retriever,
		mod:        moderator.New(opts.MaxTurns),
		topicMgr:   topics.New(opts.TopicInterval, opts.Rand),
		interrupts: interrupt.New(opts.InterruptionChance, opts.Rand),
		checker:    checker,
		log:        opts.Logger,
	}
	return &Orchestrator{
		primary:  &GraphRunner{deps: d},
		fallback: &SimpleRunner{deps: d},
		log:      opts.Logger,
	}
}

// Run executes one debate and returns its record. A graph failure is not
// surfaced to the caller: the debate restarts from scratch on the
// simplified runner, and only that runner's failure aborts the run. The
// partial record is returned alongside the error in that case.
func (o *Orchestrator) Run(ctx context.Context, in debate.Input) (*debate.Record, error) {
	if len(in.Participants) < 2 {
		return nil, fmt.Errorf("debate needs at least two participants, got %d", len(in.Participants))
	}
	if !in.Format.Name.Valid() {
		return nil, fmt.Errorf("unknown debate format %q", in.Format.Name)
	}

	s := debate.NewState(in)
	err := o.primary.Run(ctx, s)
	if err == nil {
		return s.Record(), nil
	}
	o.log.Warn("graph execution failed, restarting on simplified runner", zap.Error(err))

	s = debate.NewState(in)
	if err := o.fallback.Run(ctx, s); err != nil {
		return s.Record(), fmt.Errorf("simplified runner: %w", err)
	}
	return s.Record(), nil
}
