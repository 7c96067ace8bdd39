package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pubgraph/pkg/errors"
	"github.com/matzehuels/pubgraph/pkg/project"
	"github.com/matzehuels/pubgraph/pkg/render"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func sampleProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"pubspec.yaml": "name: app\n",
		"lib/main.dart": `import 'dart:async';
import 'package:flutter/material.dart';
import 'package:app/a.dart';
import 'src/b.dart';

void main() {}
`,
		"lib/a.dart":            "class A {}\n",
		"lib/src/b.dart":        "import '../a.dart';\n",
		"lib/orphan.dart":       "class Orphan {}\n",
		"test/widget_test.dart": "import 'package:app/main.dart';\n",
	})
}

// runCLI executes the root command with args and returns the status output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := captureStdout(t)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCrawlCommandJSON(t *testing.T) {
	dir := sampleProject(t)
	output := filepath.Join(t.TempDir(), "graph.json")

	out, err := runCLI(t, "crawl", dir, "-o", output, "--fanout", "1", "--no-cache")
	if err != nil {
		t.Fatalf("crawl: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var g render.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("output is not a graph: %v", err)
	}

	var ids []string
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	if got := strings.Join(ids, ","); got != "lib/main.dart,lib/a.dart,lib/src/b.dart" {
		t.Errorf("nodes = %s", got)
	}
	wantLinks := []render.Link{
		{Source: "lib/main.dart", Target: "lib/a.dart"},
		{Source: "lib/main.dart", Target: "lib/src/b.dart"},
		{Source: "lib/src/b.dart", Target: "lib/a.dart"},
	}
	if len(g.Links) != len(wantLinks) {
		t.Fatalf("links = %v, want %v", g.Links, wantLinks)
	}
	for i, l := range wantLinks {
		if g.Links[i] != l {
			t.Errorf("link %d = %v, want %v", i, g.Links[i], l)
		}
	}

	for _, want := range []string{"Unreached files:", "  lib/orphan.dart", "  test/widget_test.dart", "3 files"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "  lib/a.dart\n") {
		t.Errorf("reached file listed as unreached:\n%s", out)
	}
}

func TestCrawlCommandFormats(t *testing.T) {
	dir := sampleProject(t)
	outDir := t.TempDir()

	tests := []struct {
		file string
		want string
	}{
		{"deps.dot", `"lib/main.dart" -> "lib/a.dart";`},
		{"deps.mmd", "lib/main.dart --> lib/src/b.dart"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			output := filepath.Join(outDir, tt.file)
			if _, err := runCLI(t, "crawl", dir, "-o", output, "--no-cache", "--no-report"); err != nil {
				t.Fatalf("crawl: %v", err)
			}
			data, err := os.ReadFile(output)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("%s missing %q:\n%s", tt.file, tt.want, data)
			}
		})
	}
}

func TestCrawlCommandTreeDump(t *testing.T) {
	dir := sampleProject(t)
	outDir := t.TempDir()
	tree := filepath.Join(outDir, "res.json")

	_, err := runCLI(t, "crawl", dir, "-o", filepath.Join(outDir, "g.json"), "--tree", tree, "--no-cache", "--fanout", "1")
	if err != nil {
		t.Fatalf("crawl: %v", err)
	}

	data, err := os.ReadFile(tree)
	if err != nil {
		t.Fatal(err)
	}
	var root struct {
		File     string `json:"file"`
		Children []struct {
			File string `json:"file"`
		} `json:"children"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		t.Fatal(err)
	}
	if root.File != "lib/main.dart" || len(root.Children) != 2 {
		t.Errorf("tree = %+v", root)
	}
}

func TestCrawlCommandMermaidCopy(t *testing.T) {
	dir := sampleProject(t)
	outDir := t.TempDir()
	mmd := filepath.Join(outDir, "graph.mmd")

	out, err := runCLI(t, "crawl", dir, "-o", filepath.Join(outDir, "graph.json"), "--mermaid", mmd, "--fanout", "1", "--no-cache", "--no-report")
	if err != nil {
		t.Fatalf("crawl: %v", err)
	}
	data, err := os.ReadFile(mmd)
	if err != nil {
		t.Fatal(err)
	}
	want := "graph LR\nlib/main.dart --> lib/a.dart\nlib/main.dart --> lib/src/b.dart\nlib/src/b.dart --> lib/a.dart\n"
	if string(data) != want {
		t.Errorf("mermaid =\n%s\nwant\n%s", data, want)
	}
	if !strings.Contains(out, mmd) {
		t.Errorf("mermaid file not listed:\n%s", out)
	}
}

func TestCrawlCommandIgnore(t *testing.T) {
	dir := sampleProject(t)
	output := filepath.Join(t.TempDir(), "graph.mmd")

	out, err := runCLI(t, "crawl", dir, "-o", output, "--ignore", "lib/src/**", "--no-cache")
	if err != nil {
		t.Fatalf("crawl: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "b.dart") {
		t.Errorf("ignored file in graph:\n%s", data)
	}
	if !strings.Contains(out, "  lib/src/b.dart") {
		t.Errorf("ignored file should be reported unreached:\n%s", out)
	}
}

func TestCrawlCommandConfigFile(t *testing.T) {
	dir := sampleProject(t)
	output := filepath.Join(t.TempDir(), "graph.json")
	cfg := "start = \"lib/src/b.dart\"\nfanout = 1\n"
	if err := os.WriteFile(filepath.Join(dir, project.ConfigFile), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "crawl", dir, "-o", output, "--no-cache", "--no-report"); err != nil {
		t.Fatalf("crawl: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var g render.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 2 || g.Nodes[0].ID != "lib/src/b.dart" {
		t.Errorf("graph = %+v, want crawl from lib/src/b.dart", g)
	}
}

func TestCrawlCommandErrors(t *testing.T) {
	dir := sampleProject(t)
	empty := t.TempDir()
	outDir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want errors.Code
	}{
		{"no manifest", []string{"crawl", empty, "-o", filepath.Join(outDir, "g.json")}, errors.ErrCodeManifestNotFound},
		{"bad extension", []string{"crawl", dir, "-o", filepath.Join(outDir, "g.txt")}, errors.ErrCodeInvalidFormat},
		{"missing start", []string{"crawl", dir, "-o", filepath.Join(outDir, "g.json"), "--start", "lib/nope.dart"}, errors.ErrCodeFileNotFound},
		{"escaping start", []string{"crawl", dir, "-o", filepath.Join(outDir, "g.json"), "--start", "../main.dart"}, errors.ErrCodeInvalidPath},
		{"bad ignore", []string{"crawl", dir, "-o", filepath.Join(outDir, "g.json"), "--ignore", "lib/[x"}, errors.ErrCodeInvalidPattern},
		{"zero limit", []string{"crawl", dir, "-o", filepath.Join(outDir, "g.json"), "--limit", "0"}, errors.ErrCodeInvalidInput},
		{"negative limit", []string{"crawl", dir, "-o", filepath.Join(outDir, "g.json"), "--limit", "-5"}, errors.ErrCodeInvalidInput},
		{"negative fanout", []string{"crawl", dir, "-o", filepath.Join(outDir, "g.json"), "--fanout", "-1"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, append(tt.args, "--no-cache")...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestApplyConfig(t *testing.T) {
	cfg := project.Config{
		Start:  "lib/app.dart",
		Output: "deps.dot",
		Limit:  50,
		Fanout: 2,
		Ignore: []string{"**/*.g.dart"},
	}

	tests := []struct {
		name    string
		changed []string
		want    crawlOpts
	}{
		{
			name: "config fills defaults",
			want: crawlOpts{output: "deps.dot", start: "lib/app.dart", limit: 50, fanout: 2, ignore: []string{"**/*.g.dart"}},
		},
		{
			name:    "flags win",
			changed: []string{"output", "start", "limit", "fanout", "ignore"},
			want:    crawlOpts{output: "flag.json", start: "lib/flag.dart", limit: 7, fanout: 0, ignore: nil},
		},
		{
			name:    "mixed",
			changed: []string{"start"},
			want:    crawlOpts{output: "deps.dot", start: "lib/flag.dart", limit: 50, fanout: 2, ignore: []string{"**/*.g.dart"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := crawlOpts{output: defaultOutput, start: defaultStart, limit: 10000}
			changed := map[string]bool{}
			for _, f := range tt.changed {
				changed[f] = true
			}
			// flag values as parsed from the command line
			if changed["output"] {
				opts.output = "flag.json"
			}
			if changed["start"] {
				opts.start = "lib/flag.dart"
			}
			if changed["limit"] {
				opts.limit = 7
			}

			opts.applyConfig(cfg, func(f string) bool { return changed[f] })

			got := tt.want
			if opts.output != got.output || opts.start != got.start || opts.limit != got.limit ||
				opts.fanout != got.fanout || strings.Join(opts.ignore, ",") != strings.Join(got.ignore, ",") {
				t.Errorf("opts = %+v, want %+v", opts, got)
			}
		})
	}
}

func TestPrintUnreached(t *testing.T) {
	out := captureStdout(t)

	printUnreached([]string{"lib/orphan.dart", "test/x_test.dart"})
	want := []string{"Unreached files:", "  lib/orphan.dart\n", "  test/x_test.dart\n"}
	for _, w := range want {
		if !strings.Contains(out.String(), w) {
			t.Errorf("output missing %q:\n%s", w, out.String())
		}
	}

	out.Reset()
	printUnreached(nil)
	if !strings.Contains(out.String(), "Every Dart file was reached") {
		t.Errorf("empty report = %q", out.String())
	}
}

func TestReplaceExt(t *testing.T) {
	if got := replaceExt("out/deps.dot", ".svg"); got != "out/deps.svg" {
		t.Errorf("replaceExt = %q", got)
	}
	if got := replaceExt("graph", ".svg"); got != "graph.svg" {
		t.Errorf("replaceExt without extension = %q", got)
	}
}

func TestCrawlExampleProject(t *testing.T) {
	output := filepath.Join(t.TempDir(), "counter.mmd")

	out, err := runCLI(t, "crawl", "../../examples/counter_app", "-o", output, "--fanout", "1", "--no-cache")
	if err != nil {
		t.Fatalf("crawl: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := `graph LR
lib/main.dart --> lib/app.dart
lib/app.dart --> lib/src/widgets/home_page.dart
lib/src/widgets/home_page.dart --> lib/src/models/counter.dart
lib/src/widgets/home_page.dart --> lib/src/widgets/counter_label.dart
lib/src/widgets/counter_label.dart --> lib/src/models/counter.dart
lib/src/widgets/counter_label.dart --> lib/src/widgets/home_page.dart
lib/main.dart --> lib/src/models/counter.dart
`
	if string(data) != want {
		t.Errorf("mermaid =\n%s\nwant\n%s", data, want)
	}

	wantReport := "Unreached files:\n" +
		"  lib/generated/l10n.dart\n" +
		"  lib/src/models/legacy_counter.dart\n" +
		"  test/counter_test.dart\n"
	if !strings.Contains(out, wantReport) {
		t.Errorf("report missing:\n%s\ngot:\n%s", wantReport, out)
	}
}
