package cli

import (
	"github.com/spf13/cobra"

	"github.com/asynkron/fuzzpatch/pkg/patch"
)

func (a *app) newCondenseCmd() *cobra.Command {
	var (
		diffPath     string
		extractBlock bool
	)

	cmd := &cobra.Command{
		Use:   "condense [flags] file",
		Short: "Repair a drifted diff against a file",
		Long: `Condense fuzzily applies a diff whose line numbers or context have drifted,
then regenerates a clean unified diff with accurate positions and normalized
a/ b/ labels.`,
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

			diff, err := patch.Condense(patch.SplitLines(text), diffText, args[0], a.cfg.ContextLines)
			if err != nil {
				return err
			}
			return a.printDiff(diff)
		},
	}

	cmd.Flags().StringVarP(&diffPath, "diff", "d", "", "read the diff from this file instead of stdin")
	cmd.Flags().BoolVar(&extractBlock, "extract", false, "extract the diff from surrounding prose or fenced blocks")

	return cmd
}
