package main

import (
	"github.com/spf13/cobra"

	"github.com/tommurray222/candid-hospitality/internal/operations"
)

func newCleanCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Clean the input tables and export the cleaned CSVs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, root)
			if err != nil {
				return err
			}
			ctx := a.context(cmd.Context())
			defer a.close(ctx)

			clean, err := a.cleanStep()
			if err != nil {
				return err
			}
			p, err := a.newPipeline(clean, operations.NewExportStep(a.exporter()))
			if err != nil {
				return err
			}
			_, err = a.execute(ctx, p)
			return err
		},
	}
}
