package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dominochain/pkg/domino"
	errs "github.com/matzehuels/dominochain/pkg/errors"
	pkgio "github.com/matzehuels/dominochain/pkg/io"
)

// isolate points config and cache lookups at fresh temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "DOMINOCHAIN_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	return filepath.Join(cacheHome, appName)
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandTree(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"solve", "check", "render", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestSolveStdin(t *testing.T) {
	isolate(t)

	tests := []struct {
		name  string
		stdin string
		want  string
	}{
		{"triangle", "1|2\n2|3\n3|1\n", "Circular domino chain: [1|2] [2|3] [3|1]\n"},
		{"flips tiles", "1|2\n3|2\n1|3\n", "Circular domino chain: [1|2] [2|3] [3|1]\n"},
		{"single double", "4|4\n", "Circular domino chain: [4|4]\n"},
		{"odd pips", "1|2\n2|3\n", domino.ImpossibleMessage + "\n"},
		{"two rings", "1|1\n2|2\n", domino.ImpossibleMessage + "\n"},
		{"skips junk", "1|2\nhello\n2|1\n", "Circular domino chain: [1|2] [2|1]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.stdin, "solve", "--no-cache")
			if err != nil {
				t.Fatalf("solve error: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestSolveEmptyInput(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "no tiles here\n", "solve", "--no-cache")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("error = %v, want ErrReported", err)
	}
	if out != "Error: No valid dominoes found in <stdin>\n" {
		t.Errorf("output = %q", out)
	}
}

func TestSolveFiles(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	ring := writeFile(t, dir, "ring.txt", "1|2\n2|1\n")
	open := writeFile(t, dir, "open.txt", "1|2\n")
	doc := writeFile(t, dir, "tiles.json", `{"tiles": [[5, 5]]}`)

	out, _, err := execute(t, "", "solve", "--no-cache", "--jobs", "2", ring, open, doc)
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}

	want := ring + ": Circular domino chain: [1|2] [2|1]\n" +
		open + ": " + domino.ImpossibleMessage + "\n" +
		doc + ": Circular domino chain: [5|5]\n"
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}
}

func TestSolveBatchKeepsGoing(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.txt", "\n")
	ring := writeFile(t, dir, "ring.txt", "3|3\n")

	out, _, err := execute(t, "", "solve", "--no-cache", empty, ring)
	if !errors.Is(err, ErrReported) {
		t.Fatalf("error = %v, want ErrReported", err)
	}
	if !strings.Contains(out, empty+": Error: No valid dominoes found in "+empty) {
		t.Errorf("missing error line in %q", out)
	}
	if !strings.Contains(out, ring+": Circular domino chain: [3|3]") {
		t.Errorf("missing result line in %q", out)
	}
}

func TestSolveMissingFile(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "solve", filepath.Join(t.TempDir(), "nope.txt"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSolveInteractiveNeedsFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "1|2\n2|1\n")
	b := writeFile(t, dir, "b.txt", "3|3\n")

	tests := []struct {
		name string
		args []string
	}{
		{"stdin by default", []string{"solve", "-i"}},
		{"explicit stdin", []string{"solve", "--interactive", "-"}},
		{"several files", []string{"solve", "-i", a, b}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "1|2\n2|1\n", tt.args...)
			if !errs.Is(err, errs.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
			if out != "" {
				t.Errorf("output = %q, want nothing before the viewer is rejected", out)
			}
		})
	}
}

func TestSolveInteractiveNoRing(t *testing.T) {
	isolate(t)
	open := writeFile(t, t.TempDir(), "open.txt", "1|2\n")

	out, _, err := execute(t, "", "solve", "--no-cache", "-i", open)
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if out != domino.ImpossibleMessage+"\n" {
		t.Errorf("output = %q, want %q", out, domino.ImpossibleMessage+"\n")
	}
}

func TestSolveInvalidFormat(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "1|1\n", "solve", "--format", "yaml")
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestSolveJSON(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "1|2\n3|2\n1|3\n", "solve", "--no-cache", "--format", "json")
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	doc, err := pkgio.ReadJSON(strings.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !doc.Found || !doc.Feasible || doc.Source != "<stdin>" {
		t.Errorf("doc = %+v", doc)
	}
	want := []pkgio.Pair{{1, 2}, {2, 3}, {3, 1}}
	if len(doc.Chain) != len(want) {
		t.Fatalf("chain = %v, want %v", doc.Chain, want)
	}
	for i := range want {
		if doc.Chain[i] != want[i] {
			t.Errorf("chain[%d] = %v, want %v", i, doc.Chain[i], want[i])
		}
	}
}

func TestSolveJSONOutputFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "ring.json")

	out, _, err := execute(t, "2|2\n", "solve", "--no-cache", "--format", "json", "-o", path)
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output %q should name the written file", out)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	doc, err := pkgio.ReadJSON(f)
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Found || len(doc.Chain) != 1 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestSolveCachesResults(t *testing.T) {
	isolate(t)
	stdin := "1|2\n2|3\n3|1\n"

	first, _, err := execute(t, stdin, "solve", "--stats")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(first, iconFresh) {
		t.Errorf("first run should compute: %q", first)
	}

	second, _, err := execute(t, stdin, "solve", "--stats")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(second, iconCached) {
		t.Errorf("second run should hit the cache: %q", second)
	}

	refreshed, _, err := execute(t, stdin, "solve", "--stats", "--refresh")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(refreshed, iconFresh) {
		t.Errorf("--refresh should recompute: %q", refreshed)
	}
}

func TestSolveConfigMaxTiles(t *testing.T) {
	isolate(t)
	cfg := writeFile(t, t.TempDir(), "config.toml", "[solve]\nmax_tiles = 2\n")

	out, _, err := execute(t, "1|1\n2|2\n3|3\n", "--config", cfg, "solve", "--no-cache")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("error = %v, want ErrReported", err)
	}
	if !strings.HasPrefix(out, "Error: too many dominoes: 3 (max 2)") {
		t.Errorf("output = %q", out)
	}
}

func TestBadConfigFails(t *testing.T) {
	isolate(t)
	cfg := writeFile(t, t.TempDir(), "config.toml", "[solve]\nmax_tile = 2\n")

	_, _, err := execute(t, "1|1\n", "--config", cfg, "solve")
	if !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestCheck(t *testing.T) {
	isolate(t)

	tests := []struct {
		name  string
		stdin string
		want  []string
	}{
		{"ring", "1|2\n2|3\n3|1\n", []string{"Odd pips", "none", "A circular chain exists"}},
		{"odd", "1|2\n2|3\n", []string{"odd", "1, 3", "No ring: 2 pip values"}},
		{"disconnected", "1|1\n2|2\n", []string{"Components", "2 separate groups"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.stdin, "check")
			if err != nil {
				t.Fatalf("check error: %v", err)
			}
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestCheckEmpty(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "check")
	if !errs.Is(err, errs.ErrCodeEmptyInput) {
		t.Errorf("error = %v, want EMPTY_INPUT", err)
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, _, err := execute(t, "", "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s output does not mention %s", shell, appName)
		}
	}
}
