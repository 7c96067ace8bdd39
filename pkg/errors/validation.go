package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a project-relative file path such as the crawl
// entry point. It prevents path traversal and keeps paths in the canonical
// forward-slash form used throughout the graph.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateProjectName validates a package name read from a manifest.
// Dart package names are lowercase identifiers; anything that could not
// appear after "package:" in an import URI is rejected.
func ValidateProjectName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidManifest, "package name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidManifest, "package name too long (max 256 characters)")
	}
	for _, r := range name {
		if r == '/' || r == ':' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidManifest, "package name contains invalid characters: %q", name)
		}
	}
	return nil
}
