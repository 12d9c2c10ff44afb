// Package render turns a collection tree into Graphviz visualizations.
//
// [ToDOT] emits the folder/request hierarchy as a DOT digraph; [RenderSVG]
// and [RenderPNG] rasterize it in-process using
// [github.com/goccy/go-graphviz], so no graphviz installation is required.
//
// Rendering reads the tree only: it never touches the opaque payloads beyond
// peeking at the request method for labels, and it never mutates the
// collection.
package render
