package project

import (
	"io/fs"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/pubgraph/pkg/errors"
)

// DefaultPattern matches every Dart source file.
const DefaultPattern = "**/*.dart"

// SourceFiles lists the files in fsys matching pattern, sorted, with
// forward-slash paths. An empty pattern means [DefaultPattern]. Files under
// hidden directories such as .dart_tool are left out.
func SourceFiles(fsys fs.FS, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.New(errors.ErrCodeInvalidPattern, "invalid pattern: %q", pattern)
	}

	files, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReadFailed, err, "list %s", pattern)
	}
	files = slices.DeleteFunc(files, hidden)
	slices.Sort(files)
	return files, nil
}

func hidden(file string) bool {
	for _, seg := range strings.Split(file, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// Unreached returns the files of all that visited reports as unreached,
// in the order of all.
func Unreached(all []string, visited func(string) bool) []string {
	left := []string{}
	for _, f := range all {
		if !visited(f) {
			left = append(left, f)
		}
	}
	return left
}
