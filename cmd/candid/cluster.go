package main

import (
	"github.com/spf13/cobra"
)

func newClusterCmd(root *rootOptions) *cobra.Command {
	var (
		citiesFile string
		weight     float64
	)

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Build the k-means feature table",
		Long: `Cleans and prepares the input tables, keeps the most informative match per user, snaps users to the nearest cluster city and writes the normalised, one-hot encoded features to cluster_features.csv.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, root)
			if err != nil {
				return err
			}
			ctx := a.context(cmd.Context())
			defer a.close(ctx)

			if cmd.Flags().Changed("cities") {
				a.cfg.Clustering.CitiesFile = citiesFile
			}
			if cmd.Flags().Changed("weight") {
				a.cfg.Clustering.Weight = weight
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			clean, err := a.cleanStep()
			if err != nil {
				return err
			}
			prepare, err := a.prepareStep()
			if err != nil {
				return err
			}
			cluster, err := a.clusterStep(a.exporter())
			if err != nil {
				return err
			}

			p, err := a.newPipeline(clean, prepare, cluster)
			if err != nil {
				return err
			}
			_, err = a.execute(ctx, p)
			return err
		},
	}

	cmd.Flags().StringVar(&citiesFile, "cities", "", "CSV of cluster cities with city, lat and lng columns")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Value of a set one-hot indicator (0 < w <= 1)")
	return cmd
}
