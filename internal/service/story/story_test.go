package story

import (
	"errors"
	"testing"

	"github.com/oguzkopan/teletext-sub000/internal/model/session"
)

func freshSession() session.StorySession {
	return session.StorySession{
		SessionID:     "story-1",
		CurrentNodeID: StartNode,
		VisitedPath:   []string{StartNode},
		Choices:       map[string]int{},
	}
}

func TestGraphIsClosed(t *testing.T) {
	graph := Graph()
	if _, ok := graph[StartNode]; !ok {
		t.Fatalf("start node %q missing", StartNode)
	}
	for id, node := range graph {
		if node.ID != id {
			t.Fatalf("node %q has mismatched ID %q", id, node.ID)
		}
		if node.Terminal && len(node.Choices) > 0 {
			t.Fatalf("terminal node %q must not offer choices", id)
		}
		if !node.Terminal && len(node.Choices) == 0 {
			t.Fatalf("non-terminal node %q offers no choices", id)
		}
		for _, c := range node.Choices {
			if _, ok := graph[c.NextNodeID]; !ok {
				t.Fatalf("node %q links to unknown node %q", id, c.NextNodeID)
			}
		}
	}
}

func TestEveryPathReachesATerminal(t *testing.T) {
	graph := Graph()
	seen := map[string]bool{}
	var walk func(id string, depth int) bool
	walk = func(id string, depth int) bool {
		if depth > len(graph)+1 {
			return false
		}
		node := graph[id]
		if node.Terminal {
			return true
		}
		for _, c := range node.Choices {
			if walk(c.NextNodeID, depth+1) {
				seen[id] = true
			}
		}
		return seen[id]
	}
	if !walk(StartNode, 0) {
		t.Fatal("no terminal reachable from start")
	}
}

func TestAdvanceAppendsPath(t *testing.T) {
	s := freshSession()
	s, node, err := Advance(s, 0)
	if err != nil {
		t.Fatalf("Advance err: %v", err)
	}
	if node.ID != "tower" {
		t.Fatalf("unexpected node %q", node.ID)
	}
	if s.CurrentNodeID != "tower" {
		t.Fatalf("session not moved: %q", s.CurrentNodeID)
	}
	if len(s.VisitedPath) != 2 || s.VisitedPath[1] != s.CurrentNodeID {
		t.Fatalf("visited path invariant broken: %v", s.VisitedPath)
	}
	if s.Score != 1 {
		t.Fatalf("score delta not applied: %d", s.Score)
	}
	if s.Choices[StartNode] != 0 {
		t.Fatalf("choice not recorded: %v", s.Choices)
	}
}

func TestAdvanceToTerminal(t *testing.T) {
	s := freshSession()
	var err error
	s, _, err = Advance(s, 0) // tower
	if err != nil {
		t.Fatalf("Advance err: %v", err)
	}
	s, _, err = Advance(s, 0) // lamproom
	if err != nil {
		t.Fatalf("Advance err: %v", err)
	}
	var node session.StoryNode
	s, node, err = Advance(s, 0) // rescue
	if err != nil {
		t.Fatalf("Advance err: %v", err)
	}
	if !node.Terminal {
		t.Fatal("expected terminal node")
	}
	if s.Score != 6 {
		t.Fatalf("expected accumulated score 6, got %d", s.Score)
	}

	if _, _, err = Advance(s, 0); !errors.Is(err, ErrTerminalNode) {
		t.Fatalf("expected ErrTerminalNode, got %v", err)
	}
}

func TestAdvanceRejectsBadChoice(t *testing.T) {
	s := freshSession()
	if _, _, err := Advance(s, 5); !errors.Is(err, ErrChoiceOutOfRange) {
		t.Fatalf("expected ErrChoiceOutOfRange, got %v", err)
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	s := freshSession()
	if _, _, err := Advance(s, 0); err != nil {
		t.Fatalf("Advance err: %v", err)
	}
	if s.CurrentNodeID != StartNode || len(s.VisitedPath) != 1 {
		t.Fatal("input session was mutated")
	}
	if len(s.Choices) != 0 {
		t.Fatal("input choices map was mutated")
	}
}
