package render

import "github.com/matzehuels/pubgraph/pkg/crawl"

// Graph is the node/link document written for .json output.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []Link      `json:"links"`
}

// GraphNode is one unique file.
type GraphNode struct {
	ID string `json:"id"`
}

// Link is one import edge.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// ToGraph flattens a tree into unique nodes, in first-seen pre-order, and
// one link per edge. Edges repeated across branches stay separate links.
func ToGraph(root *crawl.Node) Graph {
	g := Graph{Nodes: []GraphNode{}, Links: []Link{}}
	if root == nil {
		return g
	}

	seen := map[string]bool{}
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			g.Nodes = append(g.Nodes, GraphNode{ID: id})
		}
	}

	add(root.File)
	root.Edges(func(from, to string) {
		add(to)
		g.Links = append(g.Links, Link{Source: from, Target: to})
	})
	return g
}
