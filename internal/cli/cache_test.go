package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCachePath(t *testing.T) {
	dir := isolate(t)

	out, _, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), dir)
	}
}

func TestCacheClear(t *testing.T) {
	dir := isolate(t)

	if _, _, err := execute(t, "1|2\n2|1\n", "solve"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "3|3\n", "solve"); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, dir) {
		t.Errorf("output should name the directory: %q", out)
	}

	entries, _ := filepath.Glob(filepath.Join(dir, "*", "*"))
	if len(entries) != 0 {
		t.Errorf("cache still holds %v", entries)
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	dir := isolate(t)
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("output = %q", out)
	}
}

func TestCacheClearOtherBackend(t *testing.T) {
	isolate(t)
	t.Setenv("DOMINOCHAIN_CACHE_BACKEND", "none")

	out, _, err := execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Only the file cache") {
		t.Errorf("output = %q", out)
	}
}
