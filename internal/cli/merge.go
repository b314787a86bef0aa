package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asynkron/fuzzpatch/pkg/patch"
)

func (a *app) newMergeCmd() *cobra.Command {
	var (
		snippetPath  string
		extractBlock bool
		write        bool
	)

	cmd := &cobra.Command{
		Use:   "merge [flags] file",
		Short: "Merge a bare code snippet into a file",
		Long: `Merge takes a snippet with no diff markers at all and splices it into the
file by growing context anchors from the snippet's first and last lines until
each matches a unique document position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			snippetText, err := a.readChange(snippetPath, extractBlock)
			if err != nil {
				return err
			}

			doc := patch.SplitLines(text)
			result, err := patch.MergeSnippet(doc, patch.SplitLines(snippetText))
			if err != nil {
				return err
			}
			if !result.Safe {
				a.logger.Warn("merge anchors were not verified against surrounding context",
					zap.String("file", args[0]))
			}
			a.logger.Debug("merged snippet",
				zap.String("file", args[0]),
				zap.Int("first_anchor", result.First.DocOffset+1),
				zap.Int("last_anchor", result.Last.DocOffset+1))
			return a.writeResult(result.Lines, args[0], write)
		},
	}

	cmd.Flags().StringVarP(&snippetPath, "snippet", "s", "", "read the snippet from this file instead of stdin")
	cmd.Flags().BoolVar(&extractBlock, "extract", false, "extract the snippet from surrounding prose or fenced blocks")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place instead of printing")

	return cmd
}
