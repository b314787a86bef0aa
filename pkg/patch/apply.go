package patch

import (
	"github.com/pmezard/go-difflib/difflib"
)

// ApplyDiff parses diffText and applies every hunk, in diff order, to doc.
// The input document is never mutated: either all hunks apply and the patched
// document is returned, or the first failure aborts the whole operation.
func ApplyDiff(doc Document, diffText string) (Document, error) {
	hunks, err := Parse(diffText)
	if err != nil {
		return nil, err
	}
	return ApplyHunks(doc, hunks)
}

// ApplyHunks applies parsed hunks to doc with fuzzy (whitespace-normalized)
// context matching. Each hunk observes the document as mutated by all prior
// hunks in the same run; re-applying an already-applied hunk is expected to
// fail, since its original context no longer exists.
func ApplyHunks(doc Document, hunks []Hunk) (Document, error) {
	patched := doc.Clone()
	patchedKeys := lineKeys(patched)

	// Maps positions in the evolving document back to positions in the
	// original one, so diagnostics for later hunks keep referring to lines
	// the caller can actually look up.
	deltaToOriginal := 0

	for i := range hunks {
		hunk := &hunks[i]
		window := hunk.window()
		if len(window) == 0 {
			return nil, &EmptyContextError{Header: hunk.Header, Line: hunk.HeaderLine}
		}

		windowKeys := make([]string, len(window))
		for j, line := range window {
			windowKeys[j] = lineKey(line.Text)
		}

		matched, bestOffset, bestRatio := scan(patchedKeys, windowKeys)
		if matched < 0 {
			return nil, mismatchError(doc, patchedKeys, hunk, window, windowKeys, bestOffset, bestRatio, deltaToOriginal)
		}

		replacement := hunk.replacement(patched[matched : matched+len(window)])
		patched = splice(patched, matched, len(window), replacement)
		patchedKeys = splice(patchedKeys, matched, len(window), lineKeys(replacement))
		deltaToOriginal += len(window) - len(replacement)
	}
	return patched, nil
}

// scan slides the window across the document keys and accepts the first
// (lowest-offset) exact match. Across the same pass it tracks the offset with
// the highest similarity ratio, purely to support diagnostics when no exact
// match exists. Windows hanging past the document tail are compared truncated
// so that near-misses at end of file still produce a best offset.
func scan(docKeys, windowKeys []string) (matched, bestOffset int, bestRatio float64) {
	matched, bestOffset = -1, -1
	if len(docKeys) == 0 {
		return matched, bestOffset, 0
	}
	for i := 0; i < len(docKeys); i++ {
		end := i + len(windowKeys)
		if end > len(docKeys) {
			end = len(docKeys)
		}
		segment := docKeys[i:end]
		if end-i == len(windowKeys) && keysEqual(segment, windowKeys) {
			return i, bestOffset, bestRatio
		}
		ratio := difflib.NewMatcher(windowKeys, segment).Ratio()
		if ratio > bestRatio {
			bestRatio = ratio
			bestOffset = i
		}
	}
	return matched, bestOffset, bestRatio
}

// mismatchError builds the ApplyError for a hunk whose window was not found,
// pinpointing the first mismatching (hunk line, document line) pair inside
// the best-scoring window. When the document line at the mismatch equals the
// previous hunk line under normalization, the mismatch is attributed to a
// one-line shift (typically a drifted deletion) and the reported document
// line is advanced by one instead of being reported as a content conflict.
func mismatchError(original Document, patchedKeys []string, hunk *Hunk, window []HunkLine, windowKeys []string, bestOffset int, bestRatio float64, deltaToOriginal int) *ApplyError {
	applyErr := &ApplyError{Header: hunk.Header, BestRatio: bestRatio}
	if bestOffset < 0 || bestRatio == 0 {
		applyErr.BestRatio = 0
		return applyErr
	}
	applyErr.BestOffset = bestOffset + deltaToOriginal + 1

	end := bestOffset + len(windowKeys)
	if end > len(patchedKeys) {
		end = len(patchedKeys)
	}
	segment := patchedKeys[bestOffset:end]

	for idx := range windowKeys {
		var docKey string
		truncated := idx >= len(segment)
		if !truncated {
			docKey = segment[idx]
		}
		if !truncated && windowKeys[idx] == docKey {
			continue
		}

		offByOne := !truncated && idx > 0 && windowKeys[idx-1] == docKey
		docIndex := bestOffset + deltaToOriginal + idx
		if offByOne {
			docIndex++
		}

		applyErr.HunkLine = window[idx].DiffLine
		applyErr.HunkText = window[idx].Text
		applyErr.DocLine = docIndex + 1
		applyErr.OffByOne = offByOne
		if docIndex >= 0 && docIndex < len(original) {
			applyErr.DocText = original[docIndex]
		}
		break
	}
	return applyErr
}
