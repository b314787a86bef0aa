package patch

// MatchResult describes where a resolved context group sits: Offset lines
// into the snippet, DocOffset lines into the document, spanning Length lines.
// Offsets are 0-based.
type MatchResult struct {
	Offset    int
	DocOffset int
	Length    int
}

// MergeResult is the outcome of a snippet merge.
type MergeResult struct {
	Lines Document
	First MatchResult
	Last  MatchResult
	// Safe is true only when the first anchor begins at the snippet's very
	// first line and the last anchor ends at its very last line. False
	// signals that some snippet content was absorbed as extra context and
	// the result should be treated as low confidence.
	Safe bool
}

// contextGroup is one of the two anchor frontiers during discovery: a run of
// snippet lines pinned to the snippet's start or end, plus the candidate
// document offsets where that run matches exactly under normalization. A
// group only ever grows in line extent and only ever shrinks in candidates.
type contextGroup struct {
	candidates []int
}

func (g *contextGroup) unique() bool { return len(g.candidates) == 1 }

// groupMatches returns every document offset where the group's lines match.
func groupMatches(group, docKeys []string) []int {
	var offsets []int
	for i := 0; i+len(group) <= len(docKeys); i++ {
		if keysEqual(docKeys[i:i+len(group)], group) {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

func filterAtMost(offsets []int, limit int) []int {
	var out []int
	for _, o := range offsets {
		if o <= limit {
			out = append(out, o)
		}
	}
	return out
}

func filterAtLeast(offsets []int, limit int) []int {
	var out []int
	for _, o := range offsets {
		if o >= limit {
			out = append(out, o)
		}
	}
	return out
}

func filterBeforeAny(offsets, bounds []int) []int {
	var out []int
	for _, o := range offsets {
		for _, b := range bounds {
			if b >= o {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

func filterAfterAny(offsets, bounds []int) []int {
	var out []int
	for _, o := range offsets {
		for _, b := range bounds {
			if b <= o {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// MergeSnippet merges a bare replacement snippet into doc by discovering
// uniquely-identifying context windows at the snippet's boundaries via
// iterative expansion: the first group grows downward from the snippet's
// first line and the last group grows upward from its last line, one line at
// a time, until both match the document at exactly one offset.
//
// A boundary line that never occurs in the document fails immediately with
// MissingAnchorError; the engine does not scan inward for a substitute
// anchor. "Already present" is detected after anchor discovery, not by an
// up-front substring test: a merge whose result equals the document under
// normalization fails with ErrSnippetExists, as does a snippet fully consumed
// by its own anchors. The input document is never mutated.
func MergeSnippet(doc, snippet Document) (MergeResult, error) {
	if len(snippet) == 0 || len(doc) == 0 {
		return MergeResult{}, &MissingAnchorError{First: true, Last: true}
	}

	docKeys := lineKeys(doc)
	snippetKeys := lineKeys(snippet)

	first := contextGroup{candidates: groupMatches(snippetKeys[:1], docKeys)}
	last := contextGroup{candidates: groupMatches(snippetKeys[len(snippetKeys)-1:], docKeys)}
	if len(first.candidates) == 0 || len(last.candidates) == 0 {
		return MergeResult{}, &MissingAnchorError{
			First: len(first.candidates) == 0,
			Last:  len(last.candidates) == 0,
		}
	}

	// Keep only candidates that can still appear in first-before-last order.
	first.candidates = filterBeforeAny(first.candidates, last.candidates)
	last.candidates = filterAfterAny(last.candidates, first.candidates)

	// firstEnd and lastStart are the 0-based snippet indexes of the group
	// boundaries; the expandable middle shrinks every successful step, which
	// bounds the loop.
	firstEnd := 0
	lastStart := len(snippet) - 1

	for {
		if first.unique() && last.unique() {
			if first.candidates[0] <= last.candidates[0] {
				break
			}
			return MergeResult{}, &AmbiguousContextError{
				FirstCandidates: oneBased(first.candidates),
				LastCandidates:  oneBased(last.candidates),
				FirstLines:      firstEnd + 1,
				LastLines:       len(snippet) - lastStart,
			}
		}
		if firstEnd >= lastStart {
			return MergeResult{}, &OverlapError{FirstEnd: firstEnd, LastStart: lastStart}
		}

		progress := false

		// Grow the first group one line toward the last.
		if !first.unique() && firstEnd+1 < lastStart {
			grown := groupMatches(snippetKeys[:firstEnd+2], docKeys)
			grown = filterBeforeAny(grown, last.candidates)
			if len(grown) > 0 {
				firstEnd++
				first.candidates = grown
				progress = true
			}
		}
		if first.unique() && !last.unique() {
			filtered := filterAtLeast(last.candidates, first.candidates[0])
			if len(filtered) != len(last.candidates) {
				last.candidates = filtered
				progress = true
			}
		}

		// Grow the last group one line toward the first.
		if !last.unique() && lastStart-1 > firstEnd {
			grown := groupMatches(snippetKeys[lastStart-1:], docKeys)
			grown = filterAfterAny(grown, first.candidates)
			if len(grown) > 0 {
				lastStart--
				last.candidates = grown
				progress = true
			}
		}
		if last.unique() && !first.unique() {
			filtered := filterAtMost(first.candidates, last.candidates[0])
			if len(filtered) != len(first.candidates) {
				first.candidates = filtered
				progress = true
			}
		}

		if !progress {
			return MergeResult{}, &AmbiguousContextError{
				FirstCandidates: oneBased(first.candidates),
				LastCandidates:  oneBased(last.candidates),
				FirstLines:      firstEnd + 1,
				LastLines:       len(snippet) - lastStart,
			}
		}
	}

	// Both frontiers resolved while covering the same snippet region, which
	// only happens when the snippet is a single line: it is all anchor and no
	// content, so there is nothing to merge.
	if firstEnd >= lastStart {
		return MergeResult{}, ErrSnippetExists
	}

	result := MergeResult{
		First: MatchResult{Offset: 0, DocOffset: first.candidates[0], Length: firstEnd + 1},
		Last:  MatchResult{Offset: lastStart, DocOffset: last.candidates[0], Length: len(snippet) - lastStart},
	}
	result.Safe = result.First.Offset == 0 && result.Last.Offset+result.Last.Length == len(snippet)
	result.Lines = mergeLines(doc, snippet, result.First, result.Last)

	// A merge that changes nothing means the snippet was already in the
	// document; surface that instead of a no-op result.
	if len(result.Lines) == len(doc) && keysEqual(lineKeys(result.Lines), docKeys) {
		return MergeResult{}, ErrSnippetExists
	}
	return result, nil
}

// mergeLines assembles the merged document: document before the first anchor,
// snippet content before the first anchor, the first anchor's matched
// document text verbatim, the snippet middle, the last anchor's matched
// document text verbatim, snippet content after the last anchor, and the
// remaining document.
func mergeLines(doc, snippet Document, first, last MatchResult) Document {
	merged := make(Document, 0, len(doc)+len(snippet))
	merged = append(merged, doc[:first.DocOffset]...)
	merged = append(merged, snippet[:first.Offset]...)
	merged = append(merged, doc[first.DocOffset:first.DocOffset+first.Length]...)
	merged = append(merged, snippet[first.Offset+first.Length:last.Offset]...)
	merged = append(merged, doc[last.DocOffset:last.DocOffset+last.Length]...)
	merged = append(merged, snippet[last.Offset+last.Length:]...)
	merged = append(merged, doc[last.DocOffset+last.Length:]...)
	return merged
}

func oneBased(offsets []int) []int {
	out := make([]int, len(offsets))
	for i, o := range offsets {
		out[i] = o + 1
	}
	return out
}
