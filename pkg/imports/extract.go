package imports

import "regexp"

// importRe matches `import '<uri>' ...;` at the start of a line.
var importRe = regexp.MustCompile(`(?m)^\s*import\s+['"]([^'"]+)['"][^;]*;`)

// Extract returns the URIs of all import directives in src, in source order.
func Extract(src []byte) []string {
	matches := importRe.FindAllSubmatch(src, -1)
	uris := make([]string, 0, len(matches))
	for _, m := range matches {
		uris = append(uris, string(m[1]))
	}
	return uris
}
