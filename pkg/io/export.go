package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/dirgraph/pkg/dag"
)

type graph struct {
	Meta  dag.Metadata `json:"meta,omitempty"`
	Nodes []node       `json:"nodes"`
	Edges []edge       `json:"edges"`
}

type node struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Kind  string       `json:"kind"`
	Row   int          `json:"row"`
	Meta  dag.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes g as indented JSON and writes it to w.
//
// Nodes and edges are written in graph insertion order, which for a graph
// produced by [tree.Build] is the pre-order of the directory walk.
//
// [tree.Build]: github.com/matzehuels/dirgraph/pkg/tree.Build
func WriteJSON(g *dag.DAG, w io.Writer) error {
	nodes := g.Nodes()
	edges := g.Edges()

	out := graph{
		Meta:  g.Meta(),
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = node{
			ID:    n.ID,
			Label: n.Label,
			Kind:  n.Kind.String(),
			Row:   n.Row,
			Meta:  n.Meta,
		}
	}
	for i, e := range edges {
		out.Edges[i] = edge{From: e.From, To: e.To}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
