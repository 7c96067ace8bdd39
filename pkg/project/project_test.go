package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/matzehuels/pubgraph/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, "name: my_app\nversion: 1.2.0+3\ndependencies:\n  flutter:\n    sdk: flutter\n")

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if m.Name != "my_app" || m.Version != "1.2.0+3" {
		t.Errorf("manifest = %+v", m)
	}
}

func TestReadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    errors.Code
	}{
		{"missing", "", errors.ErrCodeManifestNotFound},
		{"malformed", "name: [unclosed\n", errors.ErrCodeInvalidManifest},
		{"no name", "version: 1.0.0\n", errors.ErrCodeInvalidManifest},
		{"bad name", "name: my/app\n", errors.ErrCodeInvalidManifest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != "" {
				writeFile(t, dir, ManifestFile, tt.content)
			}
			_, err := ReadManifest(dir)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestSourceFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"lib/main.dart":              {Data: []byte("")},
		"lib/src/b.dart":             {Data: []byte("")},
		"lib/src/a.dart":             {Data: []byte("")},
		"test/widget_test.dart":      {Data: []byte("")},
		"pubspec.yaml":               {Data: []byte("name: app\n")},
		"lib/README.md":              {Data: []byte("")},
		".dart_tool/build/gen.dart":  {Data: []byte("")},
		"lib/.hidden/generated.dart": {Data: []byte("")},
	}

	files, err := SourceFiles(fsys, "")
	if err != nil {
		t.Fatal(err)
	}
	want := "lib/main.dart,lib/src/a.dart,lib/src/b.dart,test/widget_test.dart"
	if got := strings.Join(files, ","); got != want {
		t.Errorf("files = %s, want %s", got, want)
	}

	files, err = SourceFiles(fsys, "lib/src/*.dart")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(files, ","); got != "lib/src/a.dart,lib/src/b.dart" {
		t.Errorf("files = %s", got)
	}

	if _, err := SourceFiles(fsys, "lib/[.dart"); !errors.Is(err, errors.ErrCodeInvalidPattern) {
		t.Errorf("error = %v, want INVALID_PATTERN", err)
	}
}

func TestUnreached(t *testing.T) {
	all := []string{"lib/main.dart", "lib/a.dart", "lib/orphan.dart", "test/x_test.dart"}
	visited := map[string]bool{"lib/main.dart": true, "lib/a.dart": true}

	got := Unreached(all, func(f string) bool { return visited[f] })
	if strings.Join(got, ",") != "lib/orphan.dart,test/x_test.dart" {
		t.Errorf("Unreached = %v", got)
	}

	if got := Unreached(nil, func(string) bool { return false }); got == nil || len(got) != 0 {
		t.Errorf("Unreached(nil) = %#v, want empty slice", got)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFile, `start = "lib/app.dart"
output = "deps.dot"
limit = 500
fanout = 4
ignore = ["lib/generated/**", "**/*.g.dart"]
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Start != "lib/app.dart" || cfg.Output != "deps.dot" || cfg.Limit != 500 || cfg.Fanout != 4 {
		t.Errorf("config = %+v", cfg)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[1] != "**/*.g.dart" {
		t.Errorf("ignore = %v", cfg.Ignore)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("missing config should not fail: %v", err)
	}
	if cfg.Start != "" || cfg.Limit != 0 || cfg.Ignore != nil {
		t.Errorf("config = %+v, want zero", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "start = \n"},
		{"unknown key", "entry = \"lib/main.dart\"\n"},
		{"wrong type", "limit = \"many\"\n"},
		{"negative", "limit = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ConfigFile, tt.content)
			if _, err := LoadConfig(dir); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
