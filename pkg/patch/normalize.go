package patch

import "strings"

// tabWidth is the number of spaces a tab expands to before comparison.
const tabWidth = 4

// ExpandTabs replaces every tab in line with four spaces. Expansion is
// comparison-only scaffolding: the original, non-expanded lines are what get
// written to output and shown in diagnostics.
func ExpandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
}

// ComparisonKey trims leading and trailing whitespace and collapses internal
// whitespace runs to a single space. It is idempotent:
// ComparisonKey(ComparisonKey(x)) == ComparisonKey(x).
func ComparisonKey(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// lineKey is the normalized projection used for every line comparison in the
// engine. Never written back to output.
func lineKey(line string) string {
	return ComparisonKey(ExpandTabs(line))
}

func lineKeys(lines []string) []string {
	keys := make([]string, len(lines))
	for i, line := range lines {
		keys[i] = lineKey(line)
	}
	return keys
}

func keysEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
