package patch

import "testing"

func TestIsDiff(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want bool
	}{
		{"@@ -1,2 +1,2 @@\n-a\n+b\n", true},
		{"--- a/f\n+++ b/f\n@@ -1 +1 @@\n-a\n+b\n", true},
		{"just\nplain\nlines\n", false},
		{"email: who@@example\n", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsDiff(tc.text); got != tc.want {
			t.Fatalf("IsDiff(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestApplyChangeRoutesDiff(t *testing.T) {
	t.Parallel()

	doc := SplitLines("a\nb\nc\n")
	patched, safe, err := ApplyChange(doc, "@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n")
	if err != nil {
		t.Fatalf("ApplyChange returned error: %v", err)
	}
	if !safe {
		t.Fatalf("diff application should be reported safe")
	}
	if got, want := patched.String(), "a\nB\nc\n"; got != want {
		t.Fatalf("patched document mismatch: got %q want %q", got, want)
	}
}

func TestApplyChangeRoutesSnippet(t *testing.T) {
	t.Parallel()

	doc := SplitLines("L1\nL2\nL3\nL4\n")
	patched, safe, err := ApplyChange(doc, "L1\nNEW\nL4\n")
	if err != nil {
		t.Fatalf("ApplyChange returned error: %v", err)
	}
	if !safe {
		t.Fatalf("edge-anchored snippet merge should be safe")
	}
	if got, want := patched.String(), "L1\nNEW\nL4\n"; got != want {
		t.Fatalf("patched document mismatch: got %q want %q", got, want)
	}
}
