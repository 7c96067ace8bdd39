// Package crawl rebuilds a project's import graph by following imports from
// an entry file.
//
// # Overview
//
// A [Crawler] reads a file, extracts its import directives, resolves each one
// with an [imports.Resolver] and recurses into the resolved files. Sibling
// imports are expanded concurrently; a file's node is built only after all of
// its children have finished, and children keep the order in which their
// imports appear in the source.
//
//	c, err := crawl.New(os.DirFS(root), resolver, crawl.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	report, err := c.Crawl(ctx, "lib/main.dart")
//
// # Trees, not DAGs
//
// The output is a tree of [Node] values. A file reached a second time,
// either through an import cycle or from another branch whose subtree was
// already expanded, becomes a leaf stub: a node with the file name and no
// children. The edge into the file is kept, its subtree is not repeated, and
// the walk always terminates.
//
// # Results
//
// Every step yields a tagged [Result]:
//
//   - [StatusOK]: a node (expanded or leaf stub)
//   - [StatusSkipped]: the file matched an ignore pattern
//   - [StatusLimitExceeded]: the step limit was hit; the branch is abandoned
//
// Skipped and limited children are dropped from their parent. Hitting the
// limit is logged and counted in the [Report], but it does not fail the crawl.
// A file that cannot be read fails the whole crawl.
//
// # State
//
// Visited files and the step counter live in a traversal context created by
// each [Crawler.Crawl] call, so one Crawler can run any number of independent
// crawls, sequentially or concurrently.
package crawl
