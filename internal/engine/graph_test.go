// internal/engine/graph_test.go
package engine

import (
	"context"
	"errors"
	"testing"

	"podium/internal/debate"
)

func noopNode(context.Context, *debate.State) error { return nil }

func TestCompileRequiresEntryPoint(t *testing.T) {
	g := NewGraph()
	g.AddNode("a", noopNode)
	g.AddEdge("a", End)
	if _, err := g.Compile(); !errors.Is(err, ErrNoEntryPoint) {
		t.Errorf("Compile() error = %v, want ErrNoEntryPoint", err)
	}
}

func TestCompileRequiresEdges(t *testing.T) {
	g := NewGraph()
	g.AddNode("a", noopNode)
	g.SetEntryPoint("a")
	if _, err := g.Compile(); err == nil {
		t.Error("Compile() accepted a node with no outgoing edge")
	}

	g.AddEdge("a", End)
	g.AddEdge("ghost", "a")
	if _, err := g.Compile(); err == nil {
		t.Error("Compile() accepted an edge from an unknown node")
	}
}

func TestInvokeVisitsNodesInRouteOrder(t *testing.T) {
	var visited []string
	record := func(name string) NodeFunc {
		return func(context.Context, *debate.State) error {
			visited = append(visited, name)
			return nil
		}
	}

	g := NewGraph()
	g.AddNode("a", record("a"))
	g.AddNode("b", record("b"))
	g.SetEntryPoint("a")
	g.AddEdge("a", "b")
	g.AddEdge("b", End)

	compiled, err := g.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if err := compiled.Invoke(context.Background(), &debate.State{}); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if len(visited) != 2 || visited[0] != "a" || visited[1] != "b" {
		t.Errorf("visited = %v, want [a b]", visited)
	}
}

func TestInvokeNodeErrorNamesTheNode(t *testing.T) {
	g := NewGraph()
	g.AddNode("boom", func(context.Context, *debate.State) error {
		return errors.New("kaput")
	})
	g.SetEntryPoint("boom")
	g.AddEdge("boom", End)

	compiled, err := g.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	err = compiled.Invoke(context.Background(), &debate.State{})
	if err == nil || err.Error() != `node "boom": kaput` {
		t.Errorf("Invoke() error = %v, want node name wrapped", err)
	}
}

func TestInvokeStepLimit(t *testing.T) {
	g := NewGraph()
	g.AddNode("loop", noopNode)
	g.SetEntryPoint("loop")
	g.AddEdge("loop", "loop")
	g.SetStepLimit(10)

	compiled, err := g.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if err := compiled.Invoke(context.Background(), &debate.State{}); !errors.Is(err, ErrStepLimit) {
		t.Errorf("Invoke() error = %v, want ErrStepLimit", err)
	}
}

func TestInvokeHonorsContextCancellation(t *testing.T) {
	g := NewGraph()
	g.AddNode("loop", noopNode)
	g.SetEntryPoint("loop")
	g.AddEdge("loop", "loop")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	compiled, err := g.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if err := compiled.Invoke(ctx, &debate.State{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Invoke() error = %v, want context.Canceled", err)
	}
}
