// Package render turns crawl trees into graph documents.
//
// # Overview
//
// Every format walks the tree depth-first in pre-order and emits one edge
// per parent-child pair. Leaf stubs left by cycle truncation simply appear as
// repeated targets. No format mutates the tree or looks for cycles: the
// crawler guarantees the tree has no back-edges.
//
// # Formats
//
// The format is chosen from the output file extension with [FormatFor]:
//
//   - .json: node/link document {"nodes":[{"id"}],"links":[{"source","target"}]}
//     with nodes deduplicated by path (see [ToGraph])
//   - .dot: Graphviz digraph, left-to-right, box nodes (see [ToDOT])
//   - .mmd: Mermaid "graph LR" edge list (see [ToMermaid])
//   - .svg, .png: the DOT document laid out by Graphviz
//
// # Graphviz
//
// SVG and PNG output uses [github.com/goccy/go-graphviz], which runs Graphviz
// compiled to WebAssembly in-process, so no system installation is needed.
// A [Renderer] caches these artifacts by a hash of the DOT source.
//
//	r := render.NewRenderer(cache.NewNullCache(), logger)
//	svg, err := r.Render(ctx, render.FormatSVG, report.Root())
package render
