// Package pkg provides the libraries behind pubgraph, a static import-graph
// crawler for Dart packages.
//
// # Overview
//
// pubgraph follows import statements from an entry file, keeps the edges that
// stay inside the package's lib/ tree, and renders the resulting tree:
//
//	pubspec.yaml + lib/main.dart
//	         ↓
//	    [project] package (manifest, source listing, pubgraph.toml)
//	         ↓
//	    [imports] package (extract and resolve import URIs)
//	         ↓
//	    [crawl] package (concurrent traversal into a tree)
//	         ↓
//	    [render] package (JSON, DOT, Mermaid, SVG, PNG)
//
// Supporting packages:
//
//   - [errors]: structured error codes
//   - [cache]: render artifact cache
//   - [observability]: crawl, render and cache hooks
//   - [buildinfo]: version information
//
// # Quick Start
//
//	m, _ := project.ReadManifest(root)
//	res, _ := imports.NewResolver(root, m.Name)
//	c, _ := crawl.New(os.DirFS(root), res, crawl.Options{})
//	report, _ := c.Crawl(ctx, "lib/main.dart")
//	fmt.Print(render.ToMermaid(report.Root()))
//
// [project]: https://pkg.go.dev/github.com/matzehuels/pubgraph/pkg/project
// [imports]: https://pkg.go.dev/github.com/matzehuels/pubgraph/pkg/imports
// [crawl]: https://pkg.go.dev/github.com/matzehuels/pubgraph/pkg/crawl
// [render]: https://pkg.go.dev/github.com/matzehuels/pubgraph/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/pubgraph/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/pubgraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/pubgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pubgraph/pkg/buildinfo
package pkg
