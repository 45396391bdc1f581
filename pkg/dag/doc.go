// Package dag provides the in-memory graph that dirgraph builds for a
// directory tree.
//
// # Overview
//
// Nodes are organized into rows, where the row of a node is its depth below
// the visualized root. Two kinds of nodes exist:
//
//   - [NodeKindDirectory]: one node per retained directory
//   - [NodeKindFileGroup]: one node per directory listing its files
//
// Edges express containment and always go from row r to row r+1, so every
// graph produced by a directory walk is a tree rooted at row 0.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "R", Label: "R\n", Row: 0})
//	g.AddNode(dag.Node{ID: "R/S", Label: "S", Row: 1})
//	g.AddEdge(dag.Edge{From: "R", To: "R/S"})
//
// Nodes and edges are reported in insertion order by [DAG.Nodes] and
// [DAG.Edges]. Use [DAG.Validate] to verify the tree shape before rendering.
//
// # Metadata
//
// Both nodes and the graph itself carry [Metadata] maps. The builder stores
// the directory path and byte totals on nodes, the pipeline stores the run
// ID on the graph.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package dag
