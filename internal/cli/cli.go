// Package cli wires the patch engine into a cobra command tree. All file and
// stream handling lives here; the engine itself never touches the filesystem.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asynkron/fuzzpatch/internal/config"
	"github.com/asynkron/fuzzpatch/internal/extract"
	"github.com/asynkron/fuzzpatch/internal/logging"
	"github.com/asynkron/fuzzpatch/pkg/patch"
)

// app carries the state shared by every subcommand: effective configuration,
// the logger and the injected streams.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Execute runs the fuzzpatch CLI with the provided arguments and streams.
// It returns a POSIX-style exit code indicating whether execution succeeded.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	a := &app{
		cfg:    config.Default(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.reportError(err)
		return 1
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fuzzpatch",
		Short: "Fault-tolerant patch and snippet merge tool",
		Long: `fuzzpatch applies unified diffs and bare code snippets to files even when
line numbers have drifted or whitespace differs, and regenerates clean diffs
from the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "path to a fuzzpatch.toml config file")
	root.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	root.PersistentFlags().Int("context", 0, "context lines in generated diffs")
	root.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")

	root.AddCommand(a.newApplyCmd())
	root.AddCommand(a.newMergeCmd())
	root.AddCommand(a.newRenderCmd())
	root.AddCommand(a.newCondenseCmd())
	root.AddCommand(a.newBatchCmd())
	root.AddCommand(a.newViewCmd())

	return root
}

// setup resolves the effective configuration (file, environment, then flags)
// and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
	if flags.Changed("context") {
		cfg.ContextLines, _ = flags.GetInt("context")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	// Forced color must survive piped output, where profile detection would
	// otherwise downgrade every style to a no-op.
	if cfg.Color == "on" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// readInput returns the contents of path, or of stdin when path is empty
// or "-".
func (a *app) readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readChange reads change text like readInput, optionally pulling it out of
// surrounding prose first.
func (a *app) readChange(path string, extractBlock bool) (string, error) {
	raw, err := a.readInput(path)
	if err != nil {
		return "", err
	}
	if extractBlock {
		raw = extract.ChangeText(raw)
	}
	return raw, nil
}

// writeResult prints the patched document to stdout, or rewrites path in
// place when write is set.
func (a *app) writeResult(doc patch.Document, path string, write bool) error {
	if write {
		return os.WriteFile(path, []byte(doc.String()), 0o644)
	}
	_, err := io.WriteString(a.stdout, doc.String())
	return err
}

func (a *app) colorEnabled(w io.Writer) bool {
	switch a.cfg.Color {
	case "on":
		return true
	case "off":
		return false
	}
	return termenv.NewOutput(w).ColorProfile() != termenv.Ascii
}

// reportError prints err to stderr. Apply failures that carry a concrete
// mismatching line pair get an extra character-level comparison of the two
// lines.
func (a *app) reportError(err error) {
	fmt.Fprintf(a.stderr, "Error: %v\n", err)

	var applyErr *patch.ApplyError
	if errors.As(err, &applyErr) && applyErr.HunkLine > 0 && a.colorEnabled(a.stderr) {
		fmt.Fprintf(a.stderr, "  character diff: %s\n", highlightMismatch(applyErr.DocText, applyErr.HunkText))
	}
}

// highlightMismatch renders a character-level diff between the document line
// and the hunk line that failed to match.
func highlightMismatch(docText, hunkText string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(strings.TrimRight(docText, "\n"), strings.TrimRight(hunkText, "\n"), false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}
