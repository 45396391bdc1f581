package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/dirgraph/pkg/dag"
)

// Orientations accepted as GraphAttrs.Orientation.
const (
	TopToBottom = "TB"
	BottomToTop = "BT"
	LeftToRight = "LR"
	RightToLeft = "RL"
)

// GraphAttrs are the global attributes of the rendered graph.
type GraphAttrs struct {
	Orientation string   // Rank direction: TB, BT, LR or RL (default TB)
	RankSep     *float64 // Inter-level spacing in inches; nil keeps the Graphviz default
}

// nodeStyles maps node kinds to their DOT attributes.
var nodeStyles = map[dag.NodeKind]string{
	dag.NodeKindDirectory: `shape=folder, style="filled,bold", fillcolor=lemonchiffon`,
	dag.NodeKindFileGroup: `shape=box, style=""`,
}

// ToDOT encodes g as a Graphviz digraph. Nodes and edges are written in
// graph insertion order.
func ToDOT(g *dag.DAG, attrs GraphAttrs) []byte {
	orientation := attrs.Orientation
	if orientation == "" {
		orientation = TopToBottom
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", orientation)
	buf.WriteString("  overlap=scale;\n")
	buf.WriteString("  splines=polyline;\n")
	if attrs.RankSep != nil {
		fmt.Fprintf(&buf, "  ranksep=%s;\n", strconv.FormatFloat(*attrs.RankSep, 'f', -1, 64))
	}
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %s [label=%s, %s];\n", quoteID(n.ID), quoteLabel(n.Label), nodeStyles[n.Kind])
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", quoteID(e.From), quoteID(e.To))
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

var (
	idEscaper    = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\l`, "\r", "")
)

// quoteID quotes a node ID. Distinct IDs stay distinct after escaping.
func quoteID(id string) string {
	return `"` + idEscaper.Replace(id) + `"`
}

// quoteLabel quotes a label, turning line breaks into left-justified
// Graphviz line breaks.
func quoteLabel(label string) string {
	return `"` + labelEscaper.Replace(label) + `"`
}
