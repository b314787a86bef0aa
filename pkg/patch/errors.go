package patch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSnippetExists is returned by MergeSnippet when the whole snippet is
// already present in the document and there is nothing to merge.
var ErrSnippetExists = errors.New("snippet already present in document")

// FormatError reports syntactically invalid unified-diff text: either the
// text yields no hunks at all, or a hunk line cannot be understood.
type FormatError struct {
	// Line is the 1-based position of the offending line in the diff text,
	// or 0 when the whole text is unusable.
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("invalid patch: %s", e.Reason)
	}
	return fmt.Sprintf("invalid patch: %s at diff line %d: %q", e.Reason, e.Line, strings.TrimRight(e.Text, "\n"))
}

// EmptyContextError reports a hunk that carries no context or removed lines.
// Such a hunk has no anchor to locate it in the document, so it is rejected
// before any search takes place.
type EmptyContextError struct {
	Header string
	// Line is the 1-based position of the hunk header in the diff text.
	Line int
}

func (e *EmptyContextError) Error() string {
	return fmt.Sprintf("hunk %q at diff line %d has no context lines to anchor on", strings.TrimRight(e.Header, "\n"), e.Line)
}

// ApplyError reports a hunk whose context window could not be found in the
// document. It carries the closest near-miss the scan saw so that callers can
// show exactly where the hunk and the document disagree.
type ApplyError struct {
	Header string

	// BestRatio is the highest line-sequence similarity observed across the
	// scan, in [0,1]. Zero means no window resembled the hunk at all, in
	// which case the remaining fields are unset.
	BestRatio  float64
	BestOffset int // 1-based document line where the best window starts

	// First mismatching pair inside the best window. DocLine is 1-based and
	// relative to the original document, already adjusted by the off-by-one
	// heuristic when OffByOne is set.
	HunkLine int // 1-based position of the hunk line in the diff text
	HunkText string
	DocLine  int
	DocText  string
	OffByOne bool
}

func (e *ApplyError) Error() string {
	header := strings.TrimRight(e.Header, "\n")
	if e.BestRatio == 0 {
		return fmt.Sprintf("failed to apply hunk %q: no similar lines found in document", header)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "failed to apply hunk %q: best match at document line %d (ratio %.2f)", header, e.BestOffset, e.BestRatio)
	if e.HunkLine > 0 {
		fmt.Fprintf(&b, "\n  document line %d: %q", e.DocLine, strings.TrimRight(e.DocText, "\n"))
		fmt.Fprintf(&b, "\n  but the diff says %q at diff line %d", strings.TrimRight(e.HunkText, "\n"), e.HunkLine)
		if e.OffByOne {
			b.WriteString("\n  mismatch is one line off, likely caused by a drifted deletion")
		}
	}
	return b.String()
}

// MissingAnchorError reports that a snippet's boundary line does not occur
// anywhere in the document, so no anchor discovery can start.
type MissingAnchorError struct {
	First bool
	Last  bool
}

func (e *MissingAnchorError) Error() string {
	switch {
	case e.First && e.Last:
		return "the first and last lines of the snippet do not exist in the document"
	case e.First:
		return "the first line of the snippet does not exist in the document"
	default:
		return "the last line of the snippet does not exist in the document"
	}
}

// AmbiguousContextError reports that anchor discovery reached a fixed point
// without resolving both context groups to a unique document offset.
type AmbiguousContextError struct {
	// Remaining candidate start offsets (1-based document lines).
	FirstCandidates []int
	LastCandidates  []int
	// Number of snippet lines each group had grown to.
	FirstLines int
	LastLines  int
}

func (e *AmbiguousContextError) Error() string {
	return fmt.Sprintf("cannot resolve unique context groups: first group (%d lines) matches at %v, last group (%d lines) matches at %v",
		e.FirstLines, e.FirstCandidates, e.LastLines, e.LastCandidates)
}

// OverlapError reports that the two context groups met inside the snippet
// before either became unique, leaving no room to grow.
type OverlapError struct {
	// FirstEnd and LastStart are 0-based snippet indexes of the colliding
	// group boundaries.
	FirstEnd  int
	LastStart int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("context groups overlapped at snippet lines %d/%d without achieving uniqueness", e.FirstEnd+1, e.LastStart+1)
}
