package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pubgraph/pkg/crawl"
)

// ToDOTEdges returns one `"a" -> "b";` statement per edge, in pre-order.
func ToDOTEdges(root *crawl.Node) []string {
	edges := []string{}
	root.Edges(func(from, to string) {
		edges = append(edges, fmt.Sprintf("%q -> %q;", from, to))
	})
	return edges
}

// ToDOT wraps the edge statements in a left-to-right digraph with box nodes.
// The result can be laid out with [RenderDOT].
func ToDOT(root *crawl.Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph FlutterDeps {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n")
	for _, e := range ToDOTEdges(root) {
		buf.WriteString("  ")
		buf.WriteString(e)
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.String()
}

var graphvizFormats = map[Format]graphviz.Format{
	FormatSVG: graphviz.SVG,
	FormatPNG: graphviz.PNG,
}

// RenderDOT lays out a DOT document with Graphviz and encodes it as SVG or PNG.
func RenderDOT(ctx context.Context, dot string, f Format) ([]byte, error) {
	gf, ok := graphvizFormats[f]
	if !ok {
		return nil, fmt.Errorf("graphviz cannot render %s", f)
	}

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
	if err := gv.Render(ctx, g, gf, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if f == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a pixel
// sized one whose viewBox starts at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
