package cli

import (
	"github.com/spf13/cobra"

	"github.com/asynkron/fuzzpatch/internal/view"
	"github.com/asynkron/fuzzpatch/pkg/patch"
)

func (a *app) newViewCmd() *cobra.Command {
	var (
		changePath   string
		extractBlock bool
	)

	cmd := &cobra.Command{
		Use:   "view [flags] file",
		Short: "Preview a change in a scrollable diff viewer",
		Long: `View applies a change (a unified diff or a bare snippet, detected
automatically) without touching the file and shows the resulting diff in a
full-screen scrollable viewer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			changeText, err := a.readChange(changePath, extractBlock)
			if err != nil {
				return err
			}

			doc := patch.SplitLines(text)
			patched, _, err := patch.ApplyChange(doc, changeText)
			if err != nil {
				return err
			}
			diff, err := patch.Render(doc, patched, args[0], a.cfg.ContextLines)
			if err != nil {
				return err
			}
			return view.Show(args[0], diff)
		},
	}

	cmd.Flags().StringVarP(&changePath, "change", "c", "", "read the change from this file instead of stdin")
	cmd.Flags().BoolVar(&extractBlock, "extract", false, "extract the change from surrounding prose or fenced blocks")

	return cmd
}
