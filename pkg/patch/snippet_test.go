package patch

import (
	"errors"
	"testing"
)

func TestMergeSnippetSingleLineAnchors(t *testing.T) {
	t.Parallel()

	doc := Document{"L1\n", "L2\n", "L3\n", "L4\n"}
	snippet := Document{"L1\n", "NEW\n", "L4\n"}

	result, err := MergeSnippet(doc, snippet)
	if err != nil {
		t.Fatalf("MergeSnippet returned error: %v", err)
	}
	if got, want := result.Lines.String(), "L1\nNEW\nL4\n"; got != want {
		t.Fatalf("merged document mismatch: got %q want %q", got, want)
	}
	if !result.Safe {
		t.Fatalf("expected safe merge: %+v", result)
	}
	if result.First != (MatchResult{Offset: 0, DocOffset: 0, Length: 1}) {
		t.Fatalf("unexpected first anchor: %+v", result.First)
	}
	if result.Last != (MatchResult{Offset: 2, DocOffset: 3, Length: 1}) {
		t.Fatalf("unexpected last anchor: %+v", result.Last)
	}
	// The input document must stay untouched.
	if got := doc.String(); got != "L1\nL2\nL3\nL4\n" {
		t.Fatalf("input document mutated: %q", got)
	}
}

func TestMergeSnippetExpandsAmbiguousFirstGroup(t *testing.T) {
	t.Parallel()

	doc := Document{"A\n", "B\n", "A\n", "C\n", "D\n"}
	snippet := Document{"A\n", "C\n", "NEW\n", "D\n"}

	result, err := MergeSnippet(doc, snippet)
	if err != nil {
		t.Fatalf("MergeSnippet returned error: %v", err)
	}
	if got, want := result.Lines.String(), "A\nB\nA\nC\nNEW\nD\n"; got != want {
		t.Fatalf("merged document mismatch: got %q want %q", got, want)
	}
	if result.First.Length != 2 || result.First.DocOffset != 2 {
		t.Fatalf("first group should have grown to two lines at offset 2: %+v", result.First)
	}
}

func TestMergeSnippetMatchesUnderNormalization(t *testing.T) {
	t.Parallel()

	doc := Document{"\tstart()\n", "\tmiddle()\n", "\tend()\n"}
	snippet := Document{"    start()\n", "    inserted()\n", "    end()\n"}

	result, err := MergeSnippet(doc, snippet)
	if err != nil {
		t.Fatalf("MergeSnippet returned error: %v", err)
	}
	// Anchor lines keep the document's text verbatim; only the middle comes
	// from the snippet.
	if got, want := result.Lines.String(), "\tstart()\n    inserted()\n\tend()\n"; got != want {
		t.Fatalf("merged document mismatch: got %q want %q", got, want)
	}
}

func TestMergeSnippetAmbiguousContext(t *testing.T) {
	t.Parallel()

	doc := Document{"X\n", "A\n", "X\n", "B\n"}
	snippet := Document{"X\n", "B\n"}

	_, err := MergeSnippet(doc, snippet)
	var ambiguousErr *AmbiguousContextError
	if !errors.As(err, &ambiguousErr) {
		t.Fatalf("expected AmbiguousContextError, got %v", err)
	}
	if len(ambiguousErr.FirstCandidates) != 2 {
		t.Fatalf("expected both X offsets to remain candidates: %+v", ambiguousErr)
	}
}

func TestMergeSnippetMissingAnchors(t *testing.T) {
	t.Parallel()

	doc := Document{"one\n", "two\n"}

	cases := []struct {
		name    string
		snippet Document
		first   bool
		last    bool
	}{
		{"first missing", Document{"absent\n", "ins\n", "two\n"}, true, false},
		{"last missing", Document{"one\n", "ins\n", "absent\n"}, false, true},
		{"both missing", Document{"absent\n", "ins\n", "gone\n"}, true, true},
	}
	for _, tc := range cases {
		_, err := MergeSnippet(doc, tc.snippet)
		var missingErr *MissingAnchorError
		if !errors.As(err, &missingErr) {
			t.Fatalf("%s: expected MissingAnchorError, got %v", tc.name, err)
		}
		if missingErr.First != tc.first || missingErr.Last != tc.last {
			t.Fatalf("%s: unexpected boundaries: %+v", tc.name, missingErr)
		}
	}
}

func TestMergeSnippetAlreadyPresent(t *testing.T) {
	t.Parallel()

	doc := Document{"one\n", "two\n", "three\n"}
	snippet := Document{"one\n", "two\n"}

	_, err := MergeSnippet(doc, snippet)
	if !errors.Is(err, ErrSnippetExists) {
		t.Fatalf("expected ErrSnippetExists, got %v", err)
	}
}

func TestMergeSnippetSingleLineIsAllAnchor(t *testing.T) {
	t.Parallel()

	// A one-line snippet resolves both frontiers onto the same line; with no
	// content left between the anchors the merge has nothing to add.
	doc := Document{"a\n", "b\n", "c\n"}

	_, err := MergeSnippet(doc, Document{"b\n"})
	if !errors.Is(err, ErrSnippetExists) {
		t.Fatalf("expected ErrSnippetExists, got %v", err)
	}
	if got := doc.String(); got != "a\nb\nc\n" {
		t.Fatalf("input document mutated: %q", got)
	}
}

func TestMergeSnippetUniqueAnchorsMustBeOrdered(t *testing.T) {
	t.Parallel()

	// "end" occurs only before "begin", so the unique anchors resolve in the
	// wrong document order.
	doc := Document{"end\n", "mid\n", "begin\n"}
	snippet := Document{"begin\n", "NEW\n", "end\n"}

	_, err := MergeSnippet(doc, snippet)
	if err == nil {
		t.Fatalf("expected error for flipped anchors")
	}
	var ambiguousErr *AmbiguousContextError
	if !errors.As(err, &ambiguousErr) {
		t.Fatalf("expected AmbiguousContextError, got %v", err)
	}
}

func TestMergeSnippetEmptyInputs(t *testing.T) {
	t.Parallel()

	var missingErr *MissingAnchorError
	if _, err := MergeSnippet(Document{}, Document{"x\n"}); !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingAnchorError for empty document, got %v", err)
	}
	if _, err := MergeSnippet(Document{"x\n"}, Document{}); !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingAnchorError for empty snippet, got %v", err)
	}
}
