package main

import (
	"github.com/spf13/cobra"

	"github.com/tommurray222/candid-hospitality/internal/operations"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		withCluster bool
		noWorkbook  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline and export every dataset",
		Long: `Cleans the three input tables, prepares the joined candidate records, analyses them into a chart workbook and exports every dataset to the output directory.

Inputs are taken from --users, --matches and --chats, or discovered in --data-dir by name.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, root)
			if err != nil {
				return err
			}
			ctx := a.context(cmd.Context())
			defer a.close(ctx)

			if noWorkbook {
				a.cfg.Analysis.WorkbookFile = ""
			}

			clean, err := a.cleanStep()
			if err != nil {
				return err
			}
			prepare, err := a.prepareStep()
			if err != nil {
				return err
			}
			exp := a.exporter()
			steps := []operations.Step{clean, prepare, a.analyzeStep(), operations.NewExportStep(exp)}
			if withCluster {
				cluster, err := a.clusterStep(exp)
				if err != nil {
					return err
				}
				steps = append(steps, cluster)
			}

			p, err := a.newPipeline(steps...)
			if err != nil {
				return err
			}
			_, err = a.execute(ctx, p)
			return err
		},
	}

	cmd.Flags().BoolVar(&withCluster, "cluster", false, "Also write the cluster feature table")
	cmd.Flags().BoolVar(&noWorkbook, "no-workbook", false, "Skip writing the analysis workbook")
	return cmd
}
