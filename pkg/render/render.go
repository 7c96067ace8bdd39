package render

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pubgraph/pkg/cache"
	"github.com/matzehuels/pubgraph/pkg/crawl"
	"github.com/matzehuels/pubgraph/pkg/errors"
	"github.com/matzehuels/pubgraph/pkg/observability"
)

// Format is an output format, named by its file extension.
type Format string

const (
	FormatJSON    Format = "json"
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mmd"
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
)

// ArtifactTTL is how long rendered SVG and PNG artifacts stay cached.
const ArtifactTTL = 7 * 24 * time.Hour

var formats = map[string]Format{
	".json": FormatJSON,
	".dot":  FormatDOT,
	".mmd":  FormatMermaid,
	".svg":  FormatSVG,
	".png":  FormatPNG,
}

// FormatFor selects the format from the extension of path, ignoring case.
// Returns an INVALID_FORMAT error for any other extension.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formats[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported output %q (must end in .json, .dot, .mmd, .svg or .png)", path)
}

// Graphviz reports whether the format needs a Graphviz layout.
func (f Format) Graphviz() bool { return f == FormatSVG || f == FormatPNG }

func (f Format) String() string { return string(f) }

// Renderer produces documents in every [Format], caching Graphviz output.
// It holds no per-render state and is safe for concurrent use.
type Renderer struct {
	Cache  cache.Cache
	TTL    time.Duration
	Logger *log.Logger
}

// NewRenderer creates a renderer. A nil cache disables caching and a nil
// logger falls back to the default logger.
func NewRenderer(c cache.Cache, logger *log.Logger) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{Cache: c, TTL: ArtifactTTL, Logger: logger}
}

// Render returns the tree rooted at root encoded as f.
// A nil root yields an empty document.
func (r *Renderer) Render(ctx context.Context, f Format, root *crawl.Node) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, f.String())
	start := time.Now()

	data, err := r.render(ctx, f, root)
	hooks.OnRenderComplete(ctx, f.String(), len(data), time.Since(start), err)
	return data, err
}

func (r *Renderer) render(ctx context.Context, f Format, root *crawl.Node) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(ToGraph(root), "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
		}
		return data, nil
	case FormatDOT:
		return []byte(ToDOT(root)), nil
	case FormatMermaid:
		return []byte(ToMermaid(root)), nil
	case FormatSVG, FormatPNG:
		return r.renderGraphviz(ctx, f, ToDOT(root))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
}

func (r *Renderer) renderGraphviz(ctx context.Context, f Format, dot string) ([]byte, error) {
	hooks := observability.Cache()
	key := cache.Key("artifact", f, dot)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		hooks.OnCacheHit(ctx, key)
		r.Logger.Debug("render cache hit", "format", f)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, key)

	data, err := RenderDOT(ctx, dot, f)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// the DOT source is generated here, so Graphviz rejecting it is a bug
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", f)
	}

	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("failed to cache artifact", "format", f, "error", err)
	} else {
		hooks.OnCacheSet(ctx, key, len(data))
	}
	return data, nil
}

// Write renders root as f into w.
func (r *Renderer) Write(ctx context.Context, w io.Writer, f Format, root *crawl.Node) error {
	data, err := r.Render(ctx, f, root)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteTree dumps the raw tree as indented JSON with "file" and "children"
// keys. A nil root is written as null.
func WriteTree(w io.Writer, root *crawl.Node) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
