package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asynkron/fuzzpatch/internal/request"
)

func (a *app) newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [request.json]",
		Short: "Run a JSON batch request",
		Long: `Batch reads a JSON envelope carrying one base64-encoded document and an
ordered list of changes, validates it against the request schema, applies
every change in order and prints the patched document. The first failing
change aborts the whole request.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			raw, err := a.readInput(path)
			if err != nil {
				return err
			}

			req, err := request.Parse([]byte(raw))
			if err != nil {
				return err
			}
			doc, err := request.Run(req)
			if err != nil {
				return err
			}
			a.logger.Debug("batch request completed",
				zap.String("path", req.Path),
				zap.Int("changes", len(req.Changes)))
			return a.writeResult(doc, "", false)
		},
	}

	return cmd
}
