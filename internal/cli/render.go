package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/asynkron/fuzzpatch/internal/view"
	"github.com/asynkron/fuzzpatch/pkg/patch"
)

func (a *app) newRenderCmd() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "render [flags] old new",
		Short: "Render a unified diff between two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldText, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			newText, err := a.readInput(args[1])
			if err != nil {
				return err
			}

			if label == "" {
				label = args[1]
			}
			diff, err := patch.Render(patch.SplitLines(oldText), patch.SplitLines(newText), label, a.cfg.ContextLines)
			if err != nil {
				return err
			}
			return a.printDiff(diff)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "file label used in the diff header (defaults to the new file's path)")

	return cmd
}

// printDiff writes a diff to stdout, colorized when the color setting and
// terminal allow it.
func (a *app) printDiff(diff string) error {
	if a.colorEnabled(a.stdout) {
		diff = view.Colorize(diff)
	}
	_, err := io.WriteString(a.stdout, diff)
	return err
}
