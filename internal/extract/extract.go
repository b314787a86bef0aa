// Package extract pulls change descriptions out of raw model output. Models
// wrap diffs and snippets in markdown fences or [start of <file>]/[end of
// <file>] markers and sometimes prefix every line with its line number; the
// engine wants none of that.
package extract

import (
	"regexp"
	"strings"
)

var (
	fencePattern      = regexp.MustCompile("(?s)```[a-zA-Z0-9_+-]*\r?\n(.*?)```")
	fileBlockPattern  = regexp.MustCompile(`(?s)\[start of ([^\]]+)\](.*?)\[end of [^\]]+\]`)
	lineNumberPattern = regexp.MustCompile(`(?m)^\d+ `)
)

// FencedBlock returns the body of the first markdown code fence in text.
func FencedBlock(text string) (string, bool) {
	m := fencePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// FileBlock returns the path and body of the first
// [start of <path>] ... [end of <path>] section in text.
func FileBlock(text string) (path, body string, ok bool) {
	m := fileBlockPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	body = strings.TrimPrefix(m[2], "\n")
	return m[1], body, true
}

// StripLineNumbers removes a leading "<n> " line-number prefix from every
// line that carries one. Prompts show documents with numbered lines and
// models often echo the numbers back.
func StripLineNumbers(text string) string {
	return lineNumberPattern.ReplaceAllString(text, "")
}

// ChangeText extracts the most likely change description from raw model
// output: the first fenced block if any, otherwise the first file block,
// otherwise the text itself. Line-number prefixes are stripped in all cases.
func ChangeText(raw string) string {
	if body, ok := FencedBlock(raw); ok {
		return StripLineNumbers(body)
	}
	if _, body, ok := FileBlock(raw); ok {
		return StripLineNumbers(body)
	}
	return StripLineNumbers(raw)
}
