// Package render turns a directory graph into an image.
//
// # Overview
//
// Rendering happens in two steps. [ToDOT] encodes a [dag.DAG] as Graphviz
// DOT text with the graph attributes from [GraphAttrs]. A [Renderer] then
// lays the DOT text out and produces SVG or PNG bytes:
//
//   - [Graphviz] runs Graphviz in-process (WebAssembly build, no install needed)
//   - [Exec] runs an external dot binary at an explicitly configured path
//   - [Remote] posts the DOT text to a hosted Graphviz service (quickchart.io)
//
//	dot := render.ToDOT(g, render.GraphAttrs{Orientation: "LR"})
//	svg, err := render.Graphviz{}.Render(ctx, dot, render.FormatSVG)
//
// # Node Styles
//
// Directory nodes are drawn as filled folders, file-listing nodes as plain
// boxes. Label lines are left-justified.
//
// [dag.DAG]: github.com/matzehuels/dirgraph/pkg/dag.DAG
package render
