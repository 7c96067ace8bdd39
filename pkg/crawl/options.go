package crawl

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/pubgraph/pkg/observability"
)

const (
	// DefaultLimit is the default ceiling on expanded files per crawl.
	DefaultLimit = 10000

	// DefaultMaxOpenFiles bounds concurrent file reads across a crawl.
	DefaultMaxOpenFiles = 32
)

// Options configures a [Crawler].
type Options struct {
	// Limit is the step ceiling. Expansion stops once more than Limit files
	// have been expanded. Zero or negative means DefaultLimit.
	Limit int

	// Ignore holds doublestar glob patterns matched against canonical paths
	// (e.g. "lib/generated/**", "**/*.g.dart"). Matching files are not
	// crawled and do not appear in the tree.
	Ignore []string

	// Debug logs the ancestry chain of every expanded file at debug level.
	Debug bool

	// Fanout caps how many imports of one file are expanded at once.
	// Zero means unbounded; 1 expands siblings one after another, which
	// makes the choice of expanded node versus leaf stub deterministic.
	Fanout int

	// MaxOpenFiles caps concurrent reads. Zero means DefaultMaxOpenFiles.
	MaxOpenFiles int

	// Logger receives limit warnings and debug traces. Nil uses log.Default().
	Logger *log.Logger

	// Hooks receives crawl events. Nil uses observability.Crawl().
	Hooks observability.CrawlHooks
}

// WithDefaults returns a copy of o with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.MaxOpenFiles <= 0 {
		o.MaxOpenFiles = DefaultMaxOpenFiles
	}
	if o.Fanout < 0 {
		o.Fanout = 0
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Hooks == nil {
		o.Hooks = observability.Crawl()
	}
	return o
}
