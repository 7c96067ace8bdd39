package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pubgraph/pkg/crawl"
	"github.com/matzehuels/pubgraph/pkg/errors"
	"github.com/matzehuels/pubgraph/pkg/imports"
	"github.com/matzehuels/pubgraph/pkg/project"
	"github.com/matzehuels/pubgraph/pkg/render"
)

const (
	defaultOutput = "graph.json"
	defaultStart  = "lib/main.dart"
)

// crawlOpts holds the command-line flags for the crawl command.
type crawlOpts struct {
	output   string   // output file; the extension selects the format
	start    string   // entry file relative to the project root
	tree     string   // optional raw tree dump (JSON)
	mermaid  string   // optional Mermaid copy written next to output
	limit    int      // maximum expanded files
	fanout   int      // concurrent sibling expansions per file, 0 = unbounded
	ignore   []string // doublestar patterns of files never expanded
	debug    bool     // trace ancestry chains
	noCache  bool     // bypass the render cache
	noReport bool     // skip the unreached-files report
}

// crawlCommand creates the crawl command.
func (c *CLI) crawlCommand() *cobra.Command {
	opts := crawlOpts{
		output: defaultOutput,
		start:  defaultStart,
		limit:  crawl.DefaultLimit,
	}

	cmd := &cobra.Command{
		Use:   "crawl [root]",
		Short: "Crawl a Dart package and write its import graph",
		Long: `Crawl a Dart package and write its import graph.

Starting from the entry file (lib/main.dart by default), crawl follows every
import that resolves to a file under the package's lib/ directory, either
through a relative URI or a package: URI naming the package itself. SDK and
third-party imports are dropped.

The output format is chosen by the file extension: .json (node/link), .dot
(Graphviz), .mmd (Mermaid), .svg or .png (rendered with Graphviz).

Defaults can be stored in pubgraph.toml in the project root. Flags override
the file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			cfg, err := project.LoadConfig(root)
			if err != nil {
				return err
			}
			opts.applyConfig(cfg, cmd.Flags().Changed)
			if err := opts.validate(); err != nil {
				return err
			}

			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runCrawl(ctx, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file (.json, .dot, .mmd, .svg, .png)")
	cmd.Flags().StringVar(&opts.start, "start", opts.start, "entry file relative to the project root")
	cmd.Flags().IntVar(&opts.limit, "limit", opts.limit, "maximum number of files to expand (must be positive)")
	cmd.Flags().IntVar(&opts.fanout, "fanout", 0, "concurrent imports expanded per file (0 = unbounded, 1 = deterministic)")
	cmd.Flags().StringArrayVar(&opts.ignore, "ignore", nil, "glob of files to skip (repeatable)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "trace the import chain of every expanded file")
	cmd.Flags().StringVar(&opts.tree, "tree", "", "also dump the raw crawl tree as JSON to this file")
	cmd.Flags().StringVar(&opts.mermaid, "mermaid", "", "also write the graph as Mermaid to this file (e.g. graph.mmd)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.noReport, "no-report", false, "skip the unreached files report")

	return cmd
}

// applyConfig fills every option whose flag was not set from cfg.
func (o *crawlOpts) applyConfig(cfg project.Config, changed func(flag string) bool) {
	if !changed("output") && cfg.Output != "" {
		o.output = cfg.Output
	}
	if !changed("start") && cfg.Start != "" {
		o.start = cfg.Start
	}
	if !changed("limit") && cfg.Limit > 0 {
		o.limit = cfg.Limit
	}
	if !changed("fanout") && cfg.Fanout > 0 {
		o.fanout = cfg.Fanout
	}
	if !changed("ignore") && len(cfg.Ignore) > 0 {
		o.ignore = cfg.Ignore
	}
}

// validate rejects numeric options the crawler would otherwise replace
// with defaults.
func (o *crawlOpts) validate() error {
	if o.limit <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--limit must be positive, got %d", o.limit)
	}
	if o.fanout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--fanout must not be negative, got %d", o.fanout)
	}
	return nil
}

// runCrawl crawls the project at root, writes the outputs and prints the report.
func (c *CLI) runCrawl(ctx context.Context, root string, opts crawlOpts) error {
	logger := loggerFromContext(ctx)
	if opts.debug {
		logger.SetLevel(LogDebug)
	}

	format, err := render.FormatFor(opts.output)
	if err != nil {
		return err
	}

	manifest, err := project.ReadManifest(root)
	if err != nil {
		return err
	}
	resolver, err := imports.NewResolver(root, manifest.Name)
	if err != nil {
		return err
	}
	logger.Debug("loaded manifest", "package", manifest.Name, "root", resolver.Root)

	fsys := os.DirFS(resolver.Root)
	crawler, err := crawl.New(fsys, resolver, crawl.Options{
		Limit:  opts.limit,
		Ignore: opts.ignore,
		Debug:  opts.debug,
		Fanout: opts.fanout,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	report, err := crawler.Crawl(ctx, opts.start)
	if err != nil {
		return fmt.Errorf("crawl %s: %w", opts.start, err)
	}
	prog.done(fmt.Sprintf("Crawled %d files", report.Steps))

	tree := report.Root()
	if tree == nil {
		printWarning("Entry %s produced no graph (%s)", opts.start, report.Result.Status)
	}
	if report.Truncated() {
		printWarning("Crawl limit of %d files reached; the graph is partial", opts.limit)
	}

	if err := c.writeGraph(ctx, format, tree, opts); err != nil {
		return err
	}
	if opts.tree != "" {
		if err := writeTreeFile(opts.tree, tree); err != nil {
			return err
		}
	}
	if opts.mermaid != "" {
		if err := os.WriteFile(opts.mermaid, []byte(render.ToMermaid(tree)), 0o644); err != nil {
			return fmt.Errorf("write mermaid %s: %w", opts.mermaid, err)
		}
	}

	var unreached []string
	if !opts.noReport {
		all, err := project.SourceFiles(fsys, project.DefaultPattern)
		if err != nil {
			return fmt.Errorf("list source files: %w", err)
		}
		unreached = project.Unreached(all, report.Reached)
	}

	g := render.ToGraph(tree)
	printSuccess("Graph written")
	printFile(opts.output)
	if opts.tree != "" {
		printFile(opts.tree)
	}
	if opts.mermaid != "" {
		printFile(opts.mermaid)
	}
	printStats(len(g.Nodes), len(g.Links), len(unreached))

	if !opts.noReport {
		printUnreached(unreached)
	}
	if format == render.FormatDOT {
		printNewline()
		printNextStep("Render", "dot -Tsvg "+opts.output+" -o "+replaceExt(opts.output, ".svg"))
	}
	return nil
}

// writeGraph renders tree and writes it to opts.output.
func (c *CLI) writeGraph(ctx context.Context, format render.Format, tree *crawl.Node, opts crawlOpts) error {
	store, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	renderer := render.NewRenderer(store, loggerFromContext(ctx))

	var spinner *Spinner
	if format.Graphviz() {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
		spinner.Start()
	}
	data, err := renderer.Render(ctx, format, tree)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", opts.output, err)
	}
	return nil
}

func writeTreeFile(path string, tree *crawl.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render.WriteTree(f, tree); err != nil {
		f.Close()
		return fmt.Errorf("write tree %s: %w", path, err)
	}
	return f.Close()
}

// printUnreached lists project files the crawl never reached.
func printUnreached(files []string) {
	if len(files) == 0 {
		printInfo("Every Dart file was reached")
		return
	}
	printInfo("Unreached files:")
	for _, f := range files {
		printDetail("%s", f)
	}
}

func replaceExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}
