package render

import (
	"strings"

	"github.com/matzehuels/pubgraph/pkg/crawl"
)

// ToMermaidEdges returns one `a --> b` line per edge, in pre-order,
// without removing repeated edges.
func ToMermaidEdges(root *crawl.Node) []string {
	lines := []string{}
	root.Edges(func(from, to string) {
		lines = append(lines, from+" --> "+to)
	})
	return lines
}

// ToMermaid wraps the edge lines in a left-to-right Mermaid flowchart.
func ToMermaid(root *crawl.Node) string {
	var b strings.Builder
	b.WriteString("graph LR\n")
	for _, l := range ToMermaidEdges(root) {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
