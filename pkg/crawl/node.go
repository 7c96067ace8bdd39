package crawl

// Status tags the outcome of crawling one file.
type Status int

const (
	// StatusOK means the file produced a node.
	StatusOK Status = iota
	// StatusSkipped means the file matched an ignore pattern.
	StatusSkipped
	// StatusLimitExceeded means the step limit stopped expansion of the branch.
	StatusLimitExceeded
)

// String returns a lowercase name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusLimitExceeded:
		return "limit-exceeded"
	default:
		return "unknown"
	}
}

// Node is one visited file and its resolved dependency subtree.
// Children are ordered like the import directives in the file.
type Node struct {
	File     string  `json:"file"`
	Children []*Node `json:"children"`
}

// Edges calls fn for every parent-child edge in pre-order.
// A nil node has no edges.
func (n *Node) Edges(fn func(from, to string)) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		fn(n.File, c.File)
		c.Edges(fn)
	}
}

// Result is the tagged outcome of crawling one file.
// Node is set only when Status is StatusOK.
type Result struct {
	Status Status
	Node   *Node
}

// OK reports whether the result carries a node.
func (r Result) OK() bool { return r.Status == StatusOK && r.Node != nil }

func leaf(file string) Result {
	return Result{Status: StatusOK, Node: &Node{File: file, Children: []*Node{}}}
}

var (
	skipped       = Result{Status: StatusSkipped}
	limitExceeded = Result{Status: StatusLimitExceeded}
)
