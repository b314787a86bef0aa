package patch

// IsDiff reports whether a change description is diff-shaped, i.e. contains
// at least one unified-diff hunk header. Anything else is treated as a bare
// replacement snippet.
func IsDiff(change string) bool {
	for _, line := range SplitLines(change) {
		if hunkHeaderPattern.MatchString(line) {
			return true
		}
	}
	return false
}

// ApplyChange routes a change description to the right engine: diff-shaped
// text goes through Parse and ApplyHunks, a bare snippet goes through
// MergeSnippet. The merged-snippet safe flag is reported as true for diff
// applications, which are anchored exactly by construction.
func ApplyChange(doc Document, change string) (Document, bool, error) {
	if IsDiff(change) {
		patched, err := ApplyDiff(doc, change)
		if err != nil {
			return nil, false, err
		}
		return patched, true, nil
	}
	result, err := MergeSnippet(doc, SplitLines(change))
	if err != nil {
		return nil, false, err
	}
	return result.Lines, result.Safe, nil
}
