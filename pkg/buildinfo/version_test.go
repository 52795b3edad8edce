package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })
	Version, Commit = "v1.2.0", "abc123"

	got := Template()
	for _, want := range []string{"{{.Name}} version v1.2.0", "commit: abc123", "built: " + Date} {
		if !strings.Contains(got, want) {
			t.Errorf("Template() = %q, missing %q", got, want)
		}
	}
}

func TestFields(t *testing.T) {
	got := Fields()
	if len(got)%2 != 0 {
		t.Fatalf("Fields() has odd length %d", len(got))
	}
	want := map[string]string{"version": Version, "commit": Commit, "built": Date}
	for i := 0; i < len(got); i += 2 {
		key := got[i].(string)
		if got[i+1] != want[key] {
			t.Errorf("Fields()[%q] = %v, want %q", key, got[i+1], want[key])
		}
	}
}
