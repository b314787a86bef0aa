package patch

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies a single line inside a hunk body.
type LineKind int

const (
	// LineContext is an unchanged line present for alignment.
	LineContext LineKind = iota
	// LineRemoved is a line the hunk expects to delete.
	LineRemoved
	// LineAdded is a line the hunk inserts.
	LineAdded
	// LineNoNewline is the "\ No newline at end of file" marker. It is
	// neither anchor nor replacement content and is skipped when applying.
	LineNoNewline
)

// HunkLine is one classified line of a hunk body. Text excludes the leading
// marker character but keeps the original terminator.
type HunkLine struct {
	Kind LineKind
	Text string
	// DiffLine is the 1-based position of the line in the diff text, kept
	// for diagnostics.
	DiffLine int
}

// Hunk is one contiguous change region of a unified diff.
type Hunk struct {
	Header     string
	HeaderLine int // 1-based position of the header in the diff text
	OldStart   int
	OldCount   int
	NewStart   int
	NewCount   int
	Lines      []HunkLine
}

// window returns the hunk's match window: the context + removed lines that
// must exist in the document for the hunk to apply.
func (h *Hunk) window() []HunkLine {
	var window []HunkLine
	for _, line := range h.Lines {
		if line.Kind == LineContext || line.Kind == LineRemoved {
			window = append(window, line)
		}
	}
	return window
}

// replacement builds the lines that replace the matched window. Context lines
// keep the document's original text (the diff's whitespace may be wrong,
// that's why the match was fuzzy); added lines come from the diff.
func (h *Hunk) replacement(matched Document) []string {
	var out []string
	windowIdx := 0
	for _, line := range h.Lines {
		switch line.Kind {
		case LineContext:
			out = append(out, matched[windowIdx])
			windowIdx++
		case LineRemoved:
			windowIdx++
		case LineAdded:
			out = append(out, line.Text)
		}
	}
	return out
}

var hunkHeaderPattern = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

const noNewlineMarker = `\ No newline at end of file`

// Parse turns unified-diff text into an ordered sequence of hunks. It is a
// purely syntactic pass: document content is never inspected. Lines before
// the first hunk header (---/+++ labels, index lines) are ignored. A
// FormatError is returned when the text yields zero hunks, when a header does
// not match the @@ -a[,b] +c[,d] @@ shape, or when a hunk body line carries an
// unknown marker.
func Parse(diffText string) ([]Hunk, error) {
	var hunks []Hunk
	var current *Hunk

	for i, raw := range SplitLines(diffText) {
		diffLine := i + 1
		if strings.HasPrefix(raw, "@@") {
			hunk, err := parseHeader(raw, diffLine)
			if err != nil {
				return nil, err
			}
			hunks = append(hunks, hunk)
			current = &hunks[len(hunks)-1]
			continue
		}
		if current == nil {
			continue
		}
		line, err := classify(raw, diffLine)
		if err != nil {
			return nil, err
		}
		if line != nil {
			current.Lines = append(current.Lines, *line)
		}
	}

	if len(hunks) == 0 {
		return nil, &FormatError{Reason: "patch contains no hunks"}
	}
	return hunks, nil
}

func parseHeader(raw string, diffLine int) (Hunk, error) {
	m := hunkHeaderPattern.FindStringSubmatch(strings.TrimRight(raw, "\r\n"))
	if m == nil {
		return Hunk{}, &FormatError{Line: diffLine, Text: raw, Reason: "malformed hunk header"}
	}
	hunk := Hunk{Header: strings.TrimRight(raw, "\r\n"), HeaderLine: diffLine}
	hunk.OldStart, _ = strconv.Atoi(m[1])
	hunk.OldCount = headerCount(m[2])
	hunk.NewStart, _ = strconv.Atoi(m[3])
	hunk.NewCount = headerCount(m[4])
	return hunk, nil
}

// headerCount parses an optional ",n" range length; a missing count means 1.
func headerCount(s string) int {
	if s == "" {
		return 1
	}
	n, _ := strconv.Atoi(s)
	return n
}

func classify(raw string, diffLine int) (*HunkLine, error) {
	if strings.HasPrefix(raw, noNewlineMarker) {
		return &HunkLine{Kind: LineNoNewline, DiffLine: diffLine}, nil
	}
	switch {
	case strings.HasPrefix(raw, " "):
		return &HunkLine{Kind: LineContext, Text: raw[1:], DiffLine: diffLine}, nil
	case strings.HasPrefix(raw, "-"):
		return &HunkLine{Kind: LineRemoved, Text: raw[1:], DiffLine: diffLine}, nil
	case strings.HasPrefix(raw, "+"):
		return &HunkLine{Kind: LineAdded, Text: raw[1:], DiffLine: diffLine}, nil
	case raw == "\n" || raw == "":
		// Bare blank line, a trailing artifact of model-generated diffs.
		return nil, nil
	default:
		return nil, &FormatError{Line: diffLine, Text: raw, Reason: "unexpected line in hunk"}
	}
}
