package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDatasetCmd is a placeholder for dataset discovery: the upstream tool
// downloads reference datasets (root sequence, gene map, tree, QC config)
// from a remote index. This build only runs against files already on disk,
// so "list" just says so rather than pretending to reach a dataset server.
func newDatasetCmd() *cobra.Command {
	dataset := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect available reference datasets",
	}
	dataset.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List reference datasets available for `run`",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "no dataset index is configured; pass --input-ref/--input-gene-map/--input-tree to `run` directly")
			return nil
		},
	})
	return dataset
}
