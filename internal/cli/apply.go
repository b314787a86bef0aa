package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asynkron/fuzzpatch/pkg/patch"
)

func (a *app) newApplyCmd() *cobra.Command {
	var (
		diffPath     string
		extractBlock bool
		write        bool
	)

	cmd := &cobra.Command{
		Use:   "apply [flags] file",
		Short: "Apply a unified diff to a file",
		Long: `Apply locates each hunk by its context lines rather than its line numbers,
tolerating drifted positions and whitespace differences. On any failure the
file is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			diffText, err := a.readChange(diffPath, extractBlock)
			if err != nil {
				return err
			}

			doc := patch.SplitLines(text)
			patched, err := patch.ApplyDiff(doc, diffText)
			if err != nil {
				return err
			}
			a.logger.Debug("applied diff",
				zap.String("file", args[0]),
				zap.Int("lines_before", len(doc)),
				zap.Int("lines_after", len(patched)))
			return a.writeResult(patched, args[0], write)
		},
	}

	cmd.Flags().StringVarP(&diffPath, "diff", "d", "", "read the diff from this file instead of stdin")
	cmd.Flags().BoolVar(&extractBlock, "extract", false, "extract the diff from surrounding prose or fenced blocks")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place instead of printing")

	return cmd
}
