package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// UpdateGoldenEnv, when set, makes Golden rewrite golden files instead of comparing.
const UpdateGoldenEnv = "TODO_GOLDEN_UPDATE"

// Golden compares output against testdata/<name>.golden and reports the
// first line that differs. Line endings are normalized so golden files
// survive CRLF checkouts.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()
	GoldenString(t, name, string(got))
}

// GoldenString is like Golden but takes a string.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if os.Getenv(UpdateGoldenEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s (set %s=1 to create it): %v", path, UpdateGoldenEnv, err)
	}
	want := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if got == want {
		return
	}

	gotLines := strings.Split(got, "\n")
	wantLines := strings.Split(want, "\n")
	for i := 0; i < max(len(gotLines), len(wantLines)); i++ {
		var g, w string
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if g != w {
			t.Errorf("%s: line %d differs\nwant: %q\n got: %q\nfull output:\n%s", path, i+1, w, g, got)
			return
		}
	}
}
