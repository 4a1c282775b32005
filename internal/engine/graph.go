// internal/engine/graph.go
// A small directed state-graph runtime: named nodes, conditional routing
// between them, and a step limit guarding against routing cycles.
package engine

import (
	"context"
	"errors"
	"fmt"

	"podium/internal/debate"
)

// End is the terminal state name routers return to stop execution.
const End = "end"

// DefaultStepLimit bounds how many node executions one invocation may
// take before it is considered stuck.
const DefaultStepLimit = 100

var (
	ErrNoEntryPoint = errors.New("graph has no entry point")
	ErrStepLimit    = errors.New("graph exceeded step limit")
)

// NodeFunc executes one node against the debate state.
type NodeFunc func(ctx context.Context, s *debate.State) error

// RouterFunc picks the next node name, or End.
type RouterFunc func(s *debate.State) string

// Graph is a mutable graph definition. Compile validates it into an
// executable form.
type Graph struct {
	nodes     map[string]NodeFunc
	routers   map[string]RouterFunc
	entry     string
	stepLimit int
}

// NewGraph returns an empty graph with the default step limit.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]NodeFunc),
		routers:   make(map[string]RouterFunc),
		stepLimit: DefaultStepLimit,
	}
}

// AddNode registers a node under a name.
func (g *Graph) AddNode(name string, fn NodeFunc) {
	g.nodes[name] = fn
}

// AddEdge registers an unconditional transition from one node to another.
func (g *Graph) AddEdge(from, to string) {
	g.routers[from] = func(*debate.State) string { return to }
}

// AddConditionalEdges registers a router deciding the transition out of a
// node at runtime.
func (g *Graph) AddConditionalEdges(from string, router RouterFunc) {
	g.routers[from] = router
}

// SetEntryPoint names the node execution starts from.
func (g *Graph) SetEntryPoint(name string) {
	g.entry = name
}

// SetStepLimit overrides the execution step limit.
func (g *Graph) SetStepLimit(limit int) {
	g.stepLimit = limit
}

// CompiledGraph is a validated, executable graph.
type CompiledGraph struct {
	nodes     map[string]NodeFunc
	routers   map[string]RouterFunc
	entry     string
	stepLimit int
}

// Compile validates the graph: an entry point must exist, every node
// must have an outgoing route, and no router may be attached to an
// unknown node.
func (g *Graph) Compile() (*CompiledGraph, error) {
	if g.entry == "" {
		return nil, ErrNoEntryPoint
	}
	if _, ok := g.nodes[g.entry]; !ok {
		return nil, fmt.Errorf("entry point %q is not a node", g.entry)
	}
	for name := range g.nodes {
		if _, ok := g.routers[name]; !ok {
			return nil, fmt.Errorf("node %q has no outgoing edge", name)
		}
	}
	for name := range g.routers {
		if _, ok := g.nodes[name]; !ok {
			return nil, fmt.Errorf("edge attached to unknown node %q", name)
		}
	}
	return &CompiledGraph{
		nodes:     g.nodes,
		routers:   g.routers,
		entry:     g.entry,
		stepLimit: g.stepLimit,
	}, nil
}

// Invoke runs the graph to its terminal state, mutating s in place.
func (c *CompiledGraph) Invoke(ctx context.Context, s *debate.State) error {
	current := c.entry
	for steps := 0; ; steps++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if steps >= c.stepLimit {
			return fmt.Errorf("%w at node %q after %d steps", ErrStepLimit, current, steps)
		}

		fn, ok := c.nodes[current]
		if !ok {
			return fmt.Errorf("routed to unknown node %q", current)
		}
		if err := fn(ctx, s); err != nil {
			return fmt.Errorf("node %q: %w", current, err)
		}

		next := c.routers[current](s)
		if next == End {
			return nil
		}
		current = next
	}
}
