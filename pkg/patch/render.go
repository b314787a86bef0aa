package patch

import (
	"regexp"

	"github.com/pmezard/go-difflib/difflib"
)

var leadingPathPrefix = regexp.MustCompile(`^(\./|/)+`)

// Render produces unified-diff text between two line sequences with
// git-style file labels: "a/<path>" and "b/<path>", where any leading "./" or
// "/" is stripped from the supplied path. context is the number of unchanged
// lines shown around each change.
func Render(a, b Document, path string, context int) (string, error) {
	label := leadingPathPrefix.ReplaceAllString(path, "")
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: "a/" + label,
		ToFile:   "b/" + label,
		Context:  context,
	})
}

// Condense repairs a drifted diff: it fuzzily applies diffText to doc, then
// re-derives a clean unified diff between the original and patched documents.
// The output has accurate line numbers and normalized a/ b/ labels even when
// the input diff had neither.
func Condense(doc Document, diffText, path string, context int) (string, error) {
	patched, err := ApplyDiff(doc, diffText)
	if err != nil {
		return "", err
	}
	return Render(doc, patched, path, context)
}

// MergeSnippetToDiff merges a bare snippet into doc and returns the resulting
// unified diff instead of the merged document, along with the merge's safe
// flag.
func MergeSnippetToDiff(doc, snippet Document, path string, context int) (string, bool, error) {
	result, err := MergeSnippet(doc, snippet)
	if err != nil {
		return "", false, err
	}
	diff, err := Render(doc, result.Lines, path, context)
	if err != nil {
		return "", false, err
	}
	return diff, result.Safe, nil
}
