package imports

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// SDKScheme prefixes imports of the Dart SDK (e.g. "dart:io").
	SDKScheme = "dart:"

	// PackageScheme prefixes package imports ("package:<name>/<path>").
	PackageScheme = "package:"

	// DefaultLibDir is the library root, relative to the project root.
	DefaultLibDir = "lib"
)

var packageURIRe = regexp.MustCompile(`^package:([^/]+)/(.+)$`)

// Resolver resolves import URIs found in the files of one project.
//
// The zero value is not usable; construct with [NewResolver]. A Resolver is
// immutable and safe for concurrent use.
type Resolver struct {
	// Root is the absolute, cleaned project root directory.
	Root string
	// Project is the package name declared in the project's manifest.
	Project string
	// LibDir is the library root relative to Root, in forward-slash form.
	LibDir string
}

// NewResolver returns a Resolver for the project rooted at root.
// The root is made absolute so containment checks compare like with like.
func NewResolver(root, project string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	return &Resolver{Root: abs, Project: project, LibDir: DefaultLibDir}, nil
}

// Resolve maps uri, imported from the file at sourcePath (absolute, host
// separators), to a canonical project path. It reports false when the import
// is not part of the project's library graph.
func (r *Resolver) Resolve(uri, sourcePath string) (string, bool) {
	switch {
	case strings.HasPrefix(uri, SDKScheme):
		return "", false
	case strings.HasPrefix(uri, PackageScheme):
		return r.resolvePackage(uri)
	case strings.HasPrefix(uri, ".") || strings.HasPrefix(uri, "/"):
		return r.resolveRelative(uri, sourcePath)
	}
	return "", false
}

// SourcePath converts a canonical project path into the absolute host path
// that Resolve expects as its second argument.
func (r *Resolver) SourcePath(rel string) string {
	return filepath.Join(r.Root, filepath.FromSlash(rel))
}

// Imports extracts every import of src and returns the resolved ones in
// source order. rel is the canonical path of the file src was read from.
func (r *Resolver) Imports(src []byte, rel string) []string {
	from := r.SourcePath(rel)
	var out []string
	for _, uri := range Extract(src) {
		if p, ok := r.Resolve(uri, from); ok {
			out = append(out, p)
		}
	}
	return out
}

func (r *Resolver) resolvePackage(uri string) (string, bool) {
	m := packageURIRe.FindStringSubmatch(uri)
	if m == nil || m[1] != r.Project {
		return "", false
	}
	p := path.Join(r.libDir(), m[2])
	if !r.inLib(p) {
		return "", false
	}
	return p, true
}

func (r *Resolver) resolveRelative(uri, sourcePath string) (string, bool) {
	resolved := filepath.FromSlash(uri)
	if filepath.IsAbs(resolved) {
		resolved = filepath.Clean(resolved)
	} else {
		resolved = filepath.Join(filepath.Dir(sourcePath), resolved)
	}

	root := strings.TrimSuffix(r.Root, string(filepath.Separator))
	if !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", false
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if !r.inLib(rel) {
		return "", false
	}
	return rel, true
}

func (r *Resolver) libDir() string {
	if r.LibDir == "" {
		return DefaultLibDir
	}
	return strings.Trim(r.LibDir, "/")
}

func (r *Resolver) inLib(p string) bool {
	return strings.HasPrefix(p, r.libDir()+"/")
}
