// Package io exports directory graphs as JSON.
//
// The export carries everything needed to redraw a graph with another tool:
// node labels, kinds and depths, the per-node metadata recorded by the tree
// builder, and the graph-level metadata (root directory and run ID).
//
// # JSON Format
//
//	{
//	  "meta": {"root": "R", "run_id": "..."},
//	  "nodes": [
//	    {"id": "R", "label": "R\n", "kind": "directory", "row": 0, "meta": {"path": "R"}},
//	    {"id": "R/S", "label": "S\n", "kind": "directory", "row": 1, "meta": {"path": "R/S"}},
//	    {"id": "1a.txt\n", "label": "a.txt\n", "kind": "files", "row": 1}
//	  ],
//	  "edges": [
//	    {"from": "R", "to": "R/S"},
//	    {"from": "R", "to": "1a.txt\n"}
//	  ]
//	}
//
// Labels keep their raw line breaks; DOT-specific escaping is applied only
// by [render.ToDOT].
//
// [render.ToDOT]: github.com/matzehuels/dirgraph/pkg/render.ToDOT
package io
