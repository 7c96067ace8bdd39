package crawl

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/matzehuels/pubgraph/pkg/errors"
	"github.com/matzehuels/pubgraph/pkg/imports"
)

// Crawler builds import trees for one project.
//
// A Crawler holds configuration only. All traversal state belongs to a
// single Crawl call, so a Crawler is safe for concurrent use.
type Crawler struct {
	fsys     fs.FS
	resolver *imports.Resolver
	opts     Options
}

// New creates a Crawler reading project files from fsys, whose root must be
// the project root the resolver was built for.
//
// Returns an INVALID_PATTERN error if an ignore pattern is malformed.
func New(fsys fs.FS, resolver *imports.Resolver, opts Options) (*Crawler, error) {
	if fsys == nil || resolver == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "crawler needs a file system and a resolver")
	}
	for _, p := range opts.Ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.New(errors.ErrCodeInvalidPattern, "invalid ignore pattern: %q", p)
		}
	}
	opts.Ignore = slices.Clone(opts.Ignore)
	return &Crawler{fsys: fsys, resolver: resolver, opts: opts.WithDefaults()}, nil
}

// Report is the outcome of one crawl.
type Report struct {
	RunID  string
	Start  string
	Result Result

	// Visited lists every expanded file, sorted.
	Visited []string
	// Steps is the number of expanded files.
	Steps int
	// LimitHits counts branches abandoned at the step limit.
	LimitHits int
	Duration  time.Duration
}

// Root returns the root node, or nil if the entry file was skipped or limited.
func (r *Report) Root() *Node {
	if !r.Result.OK() {
		return nil
	}
	return r.Result.Node
}

// Truncated reports whether the step limit cut off any branch.
func (r *Report) Truncated() bool { return r.LimitHits > 0 }

// Reached reports whether file was expanded during the crawl.
func (r *Report) Reached(file string) bool {
	_, ok := slices.BinarySearch(r.Visited, file)
	return ok
}

// traversal is the shared state of one crawl.
type traversal struct {
	runID string
	log   *log.Logger
	reads *semaphore.Weighted

	mu        sync.Mutex
	visited   map[string]struct{}
	steps     int
	limitHits int
}

type claim int

const (
	claimed claim = iota
	claimVisited
	claimLimit
)

// claim marks file visited and counts a step, unless the file was already
// visited or the step counter is past limit. Checking and marking happen
// under one lock so a file is expanded at most once per crawl.
func (t *traversal) claim(file string, limit int) (claim, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.visited[file]; ok {
		return claimVisited, t.steps
	}
	if t.steps > limit {
		t.limitHits++
		return claimLimit, t.steps
	}
	t.steps++
	t.visited[file] = struct{}{}
	return claimed, t.steps
}

// Crawl builds the import tree rooted at start, a project-relative path
// such as "lib/main.dart". Start is cleaned first, so "./lib/main.dart"
// crawls the same file as "lib/main.dart".
//
// A read failure anywhere in the tree cancels the remaining work and is
// returned as a FILE_NOT_FOUND or READ_FAILED error.
func (c *Crawler) Crawl(ctx context.Context, start string) (*Report, error) {
	if err := errors.ValidatePath(start); err != nil {
		return nil, err
	}
	start = path.Clean(start)
	if start == "." {
		return nil, errors.New(errors.ErrCodeInvalidPath, "start must name a file")
	}

	runID := uuid.NewString()
	t := &traversal{
		runID:   runID,
		log:     c.opts.Logger.With("run", runID[:8]),
		reads:   semaphore.NewWeighted(int64(c.opts.MaxOpenFiles)),
		visited: make(map[string]struct{}),
	}

	c.opts.Hooks.OnCrawlStart(ctx, runID, start)
	begin := time.Now()
	res, err := c.crawl(ctx, t, start, nil)
	elapsed := time.Since(begin)

	t.mu.Lock()
	visited := make([]string, 0, len(t.visited))
	for f := range t.visited {
		visited = append(visited, f)
	}
	steps, hits := t.steps, t.limitHits
	t.mu.Unlock()
	slices.Sort(visited)

	c.opts.Hooks.OnCrawlComplete(ctx, runID, len(visited), elapsed, err)
	if err != nil {
		return nil, err
	}

	return &Report{
		RunID:     runID,
		Start:     start,
		Result:    res,
		Visited:   visited,
		Steps:     steps,
		LimitHits: hits,
		Duration:  elapsed,
	}, nil
}

func (c *Crawler) crawl(ctx context.Context, t *traversal, file string, parents []string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if c.ignored(file) {
		if c.opts.Debug {
			t.log.Debug("Ignoring", "file", file)
		}
		return skipped, nil
	}

	if slices.Contains(parents, file) {
		return leaf(file), nil
	}

	switch state, steps := t.claim(file, c.opts.Limit); state {
	case claimVisited:
		return leaf(file), nil
	case claimLimit:
		t.log.Error("Reached crawler limit", "file", file, "limit", c.opts.Limit)
		c.opts.Hooks.OnLimitExceeded(ctx, t.runID, file, steps)
		return limitExceeded, nil
	}

	chain := append(slices.Clip(parents), file)
	if c.opts.Debug {
		c.trace(t, chain)
	}

	src, err := c.read(ctx, t, file)
	if err != nil {
		return Result{}, err
	}
	deps := c.resolver.Imports(src, file)
	c.opts.Hooks.OnFileVisited(ctx, t.runID, file, len(deps))

	results := make([]Result, len(deps))
	g, gctx := errgroup.WithContext(ctx)
	if c.opts.Fanout > 0 {
		g.SetLimit(c.opts.Fanout)
	}
	for i, dep := range deps {
		g.Go(func() error {
			r, err := c.crawl(gctx, t, dep, chain)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	children := make([]*Node, 0, len(results))
	for _, r := range results {
		if r.OK() {
			children = append(children, r.Node)
		}
	}
	return Result{Status: StatusOK, Node: &Node{File: file, Children: children}}, nil
}

func (c *Crawler) read(ctx context.Context, t *traversal, file string) ([]byte, error) {
	if err := t.reads.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer t.reads.Release(1)

	data, err := fs.ReadFile(c.fsys, file)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", file)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReadFailed, err, "read %s", file)
	}
	return data, nil
}

func (c *Crawler) ignored(file string) bool {
	for _, p := range c.opts.Ignore {
		if ok, _ := doublestar.Match(p, file); ok {
			return true
		}
	}
	return false
}

// trace logs the ancestry chain, one line per level below the entry file.
func (c *Crawler) trace(t *traversal, chain []string) {
	for i, p := range chain {
		if i == 0 {
			continue
		}
		t.log.Debug(strings.Repeat("  ", i) + "└─" + p)
	}
}
