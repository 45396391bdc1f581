package dag

import (
	"errors"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New(nil)
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want %v", err, ErrInvalidNodeID)
	}
	if err := g.AddNode(Node{ID: "R"}); err != nil {
		t.Fatalf("AddNode(R) = %v", err)
	}
	if err := g.AddNode(Node{ID: "R"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(R) again = %v, want %v", err, ErrDuplicateNodeID)
	}
	n, _ := g.Node("R")
	if n.Meta == nil {
		t.Error("Meta should be initialized")
	}
}

func TestAddEdge(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "R"})

	if err := g.AddEdge(Edge{From: "X", To: "R"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(X→R) = %v, want %v", err, ErrUnknownSourceNode)
	}
	if err := g.AddEdge(Edge{From: "R", To: "X"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(R→X) = %v, want %v", err, ErrUnknownTargetNode)
	}
}

func TestInsertionOrder(t *testing.T) {
	g := New(nil)
	ids := []string{"R", "R/b", "R/a", "1files", "R/b/c"}
	for i, id := range ids {
		row := 1
		if i == 0 {
			row = 0
		}
		_ = g.AddNode(Node{ID: id, Row: row})
	}

	got := NodeIDs(g.Nodes())
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("Nodes() = %v, want %v", got, ids)
		}
	}
	if src := g.Sources(); len(src) != 5 || src[0].ID != "R" {
		t.Errorf("Sources()[0] = %v, want R first", NodeIDs(src))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		edges []Edge
		want  error
	}{
		{
			name:  "single root",
			nodes: []Node{{ID: "R"}},
		},
		{
			name:  "tree",
			nodes: []Node{{ID: "R"}, {ID: "R/S", Row: 1}, {ID: "1", Row: 1, Kind: NodeKindFileGroup}},
			edges: []Edge{{From: "R", To: "R/S"}, {From: "R", To: "1"}},
		},
		{
			name:  "skipped row",
			nodes: []Node{{ID: "R"}, {ID: "R/S", Row: 2}},
			edges: []Edge{{From: "R", To: "R/S"}},
			want:  ErrNonConsecutiveRows,
		},
		{
			name:  "two parents",
			nodes: []Node{{ID: "A"}, {ID: "B"}, {ID: "C", Row: 1}},
			edges: []Edge{{From: "A", To: "C"}, {From: "B", To: "C"}},
			want:  ErrMultipleParents,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(nil)
			for _, n := range tt.nodes {
				if err := g.AddNode(n); err != nil {
					t.Fatalf("AddNode(%s) = %v", n.ID, err)
				}
			}
			for _, e := range tt.edges {
				if err := g.AddEdge(e); err != nil {
					t.Fatalf("AddEdge(%s→%s) = %v", e.From, e.To, err)
				}
			}
			err := g.Validate()
			if tt.want == nil && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRows(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "R"})
	_ = g.AddNode(Node{ID: "R/a", Row: 1})
	_ = g.AddNode(Node{ID: "R/a/b", Row: 2})

	if got := g.MaxRow(); got != 2 {
		t.Errorf("MaxRow() = %d, want 2", got)
	}
	if got := g.RowIDs(); len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("RowIDs() = %v, want [0 1 2]", got)
	}
	if got := g.NodesInRow(1); len(got) != 1 || got[0].ID != "R/a" {
		t.Errorf("NodesInRow(1) = %v", NodeIDs(got))
	}
}
