package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), append(args, "--color", "off"), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestApplyPrintsPatchedDocument(t *testing.T) {
	file := writeTemp(t, "f.txt", "one\ntwo\nthree\n")
	diff := "@@ -1,3 +1,3 @@\n one\n-two\n+2\n three\n"

	code, stdout, stderr := run(t, diff, "apply", file)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "one\n2\nthree\n", stdout)
}

func TestApplyWriteRewritesFile(t *testing.T) {
	file := writeTemp(t, "f.txt", "one\ntwo\n")
	diff := writeTemp(t, "change.diff", "@@ -1,2 +1,2 @@\n one\n-two\n+2\n")

	code, stdout, stderr := run(t, "", "apply", "-w", "-d", diff, file)
	require.Equal(t, 0, code, stderr)
	require.Empty(t, stdout)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "one\n2\n", string(data))
}

func TestApplyFailureLeavesFileUntouched(t *testing.T) {
	file := writeTemp(t, "f.txt", "one\n")
	diff := "@@ -1 +1 @@\n-absent\n+replacement\n"

	code, _, stderr := run(t, diff, "apply", "-w", file)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "failed to apply hunk")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "one\n", string(data))
}

func TestApplyExtractsFencedDiff(t *testing.T) {
	file := writeTemp(t, "f.txt", "one\ntwo\n")
	prose := "Here you go:\n```diff\n@@ -1,2 +1,2 @@\n one\n-two\n+2\n```\nthanks\n"

	code, stdout, stderr := run(t, prose, "apply", "--extract", file)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "one\n2\n", stdout)
}

func TestMergeSplicesSnippet(t *testing.T) {
	file := writeTemp(t, "f.txt", "alpha\nbeta\ngamma\n")

	code, stdout, stderr := run(t, "beta\ninserted\ngamma\n", "merge", file)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "alpha\nbeta\ninserted\ngamma\n", stdout)
}

func TestRenderProducesUnifiedDiff(t *testing.T) {
	oldFile := writeTemp(t, "old.txt", "one\ntwo\n")
	newFile := writeTemp(t, "new.txt", "one\n2\n")

	code, stdout, stderr := run(t, "", "render", "--label", "f.txt", oldFile, newFile)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "--- a/f.txt\n+++ b/f.txt\n")
	require.Contains(t, stdout, "-two\n+2\n")
}

func TestCondenseRepairsDriftedDiff(t *testing.T) {
	file := writeTemp(t, "f.txt", "pad1\npad2\npad3\npad4\none\ntwo\nthree\n")
	drifted := "@@ -1,3 +1,3 @@\n one\n-two\n+2\n three\n"

	code, stdout, stderr := run(t, drifted, "condense", file)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "@@ -3,5 +3,5 @@")
	require.Contains(t, stdout, "-two\n+2\n")
}

func TestBatchAppliesChangesInOrder(t *testing.T) {
	req := `{
  "path": "f.txt",
  "document_b64": "b25lCnR3bwp0aHJlZQo=",
  "changes": [
    {"kind": "diff", "payload_b64": "QEAgLTEsMyArMSwzIEBACiBvbmUKLXR3bworMgogdGhyZWUK"}
  ]
}`

	code, stdout, stderr := run(t, req, "batch")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "one\n2\nthree\n", stdout)
}

func TestBatchRejectsInvalidEnvelope(t *testing.T) {
	code, _, stderr := run(t, `{"path": "f.txt"}`, "batch")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "Error:")
}

func TestUnknownCommandFails(t *testing.T) {
	code, _, _ := run(t, "", "frobnicate")
	require.Equal(t, 1, code)
}
