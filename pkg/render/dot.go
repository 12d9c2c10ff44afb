package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/colsplit/colsplit/pkg/collection"
)

// Options configures DOT generation.
type Options struct {
	// Detailed prefixes request labels with the HTTP method when one can be
	// read from the payload.
	Detailed bool
}

// ToDOT converts a collection tree to Graphviz DOT format. Folders render as
// filled boxes, requests as rounded ones; edges follow the child order of
// the tree. The resulting DOT string can be rasterized with [RenderSVG] or
// [RenderPNG].
func ToDOT(col *collection.Collection, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph collection {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, style=\"filled,bold\", fillcolor=lightyellow];\n",
		"root", col.Info.Name)

	w := &dotWalker{buf: &buf, opts: opts}
	w.walk("root", col.Items)

	buf.WriteString("}\n")
	return buf.String()
}

type dotWalker struct {
	buf  *bytes.Buffer
	opts Options
	seq  int
}

func (w *dotWalker) walk(parentID string, nodes []*collection.Node) {
	for _, n := range nodes {
		id := fmt.Sprintf("n%d", w.seq)
		w.seq++

		if n.Kind == collection.KindFolder {
			fmt.Fprintf(w.buf, "  %q [label=%q, style=filled, fillcolor=lightgrey];\n", id, n.Name)
			fmt.Fprintf(w.buf, "  %q -> %q;\n", parentID, id)
			w.walk(id, n.Children)
			continue
		}

		fmt.Fprintf(w.buf, "  %q [label=%q, style=rounded];\n", id, w.requestLabel(n))
		fmt.Fprintf(w.buf, "  %q -> %q;\n", parentID, id)
	}
}

func (w *dotWalker) requestLabel(n *collection.Node) string {
	if !w.opts.Detailed {
		return n.Name
	}
	if m := requestMethod(n.Request); m != "" {
		return m + " " + n.Name
	}
	return n.Name
}

// RequestMethod peeks into a request node's payload for its HTTP method.
// An empty string means no method could be read.
func RequestMethod(n *collection.Node) string {
	return requestMethod(n.Request)
}

// requestMethod peeks into an opaque request payload for its HTTP method.
// Payloads are pass-through blobs, so any shape problem simply yields an
// empty method rather than an error.
func requestMethod(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var probe struct {
		Method string `json:"method"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.Method
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
