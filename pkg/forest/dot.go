package forest

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the trees.
//
// Each tree becomes a cluster of nodes; edges point from parent to child
// (mouth to source for river trees). The label function renders a node's
// value; pass nil to label nodes by NodeID.
//
// Example:
//
//	dot := forest.ToDOT(rivers, func(p field.Point) string { return p.String() })
//	svg, err := forest.RenderSVG(ctx, dot)
func ToDOT[T any](trees []*Tree[T], label func(T) string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Rivers {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=10, shape=point];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	for ti, t := range trees {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", ti)
		fmt.Fprintf(&buf, "    label=\"river %d\";\n", ti)
		for _, id := range t.PreOrder() {
			text := fmt.Sprintf("%d", id)
			if label != nil {
				text = label(t.Value(id))
			}
			shape := "point"
			if id == t.Root() {
				shape = "box"
			}
			fmt.Fprintf(&buf, "    t%d_n%d [label=%q, shape=%s];\n", ti, id, text, shape)
		}
		t.Edges(func(parent, child NodeID) {
			fmt.Fprintf(&buf, "    t%d_n%d -> t%d_n%d;\n", ti, parent, ti, child)
		})
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT document with Graphviz and returns the SVG bytes.
//
// All errors are wrapped with context using fmt.Errorf with %w.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
