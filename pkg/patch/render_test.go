package patch

import (
	"strings"
	"testing"
)

func TestRenderNormalizesLabels(t *testing.T) {
	t.Parallel()

	a := SplitLines("x\n")
	b := SplitLines("y\n")

	cases := []struct {
		path string
		want string
	}{
		{"pkg/file.py", "pkg/file.py"},
		{"./pkg/file.py", "pkg/file.py"},
		{"/pkg/file.py", "pkg/file.py"},
		{".//deep/path.py", "deep/path.py"},
	}
	for _, tc := range cases {
		diff, err := Render(a, b, tc.path, 3)
		if err != nil {
			t.Fatalf("Render returned error: %v", err)
		}
		if !strings.HasPrefix(diff, "--- a/"+tc.want+"\n+++ b/"+tc.want+"\n") {
			t.Fatalf("unexpected labels for %q:\n%s", tc.path, diff)
		}
	}
}

func TestRenderUnifiedDiffContent(t *testing.T) {
	t.Parallel()

	a := SplitLines("one\ntwo\nthree\n")
	b := SplitLines("one\n2\nthree\n")

	diff, err := Render(a, b, "f.txt", 3)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	want := "--- a/f.txt\n+++ b/f.txt\n@@ -1,3 +1,3 @@\n one\n-two\n+2\n three\n"
	if diff != want {
		t.Fatalf("unexpected diff:\ngot  %q\nwant %q", diff, want)
	}
}

func TestRenderIdenticalDocumentsIsEmpty(t *testing.T) {
	t.Parallel()

	a := SplitLines("same\n")
	diff, err := Render(a, a.Clone(), "f.txt", 3)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if diff != "" {
		t.Fatalf("expected empty diff, got %q", diff)
	}
}

func TestCondenseRepairsDriftedDiff(t *testing.T) {
	t.Parallel()

	doc := SplitLines("a\nb\nc\nd\ne\n")
	// Stale header, whitespace-damaged context.
	drifted := "@@ -40,3 +40,3 @@\n   b\n-  c\n+C\n   d\n"

	clean, err := Condense(doc, drifted, "./lib/mod.py", 3)
	if err != nil {
		t.Fatalf("Condense returned error: %v", err)
	}
	patched, err := ApplyDiff(doc, drifted)
	if err != nil {
		t.Fatalf("ApplyDiff returned error: %v", err)
	}
	want, err := Render(doc, patched, "lib/mod.py", 3)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if clean != want {
		t.Fatalf("condensed diff mismatch:\ngot  %q\nwant %q", clean, want)
	}
	if !strings.Contains(clean, "@@ -1,5 +1,5 @@") {
		t.Fatalf("expected re-derived line numbers, got %q", clean)
	}
}

func TestMergeSnippetToDiff(t *testing.T) {
	t.Parallel()

	doc := Document{"L1\n", "L2\n", "L3\n", "L4\n"}
	snippet := Document{"L1\n", "NEW\n", "L4\n"}

	diff, safe, err := MergeSnippetToDiff(doc, snippet, "f.txt", 3)
	if err != nil {
		t.Fatalf("MergeSnippetToDiff returned error: %v", err)
	}
	if !safe {
		t.Fatalf("expected safe merge")
	}
	patched, err := ApplyDiff(doc, diff)
	if err != nil {
		t.Fatalf("generated diff failed to apply: %v", err)
	}
	if got, want := patched.String(), "L1\nNEW\nL4\n"; got != want {
		t.Fatalf("applying generated diff mismatch: got %q want %q", got, want)
	}
}
