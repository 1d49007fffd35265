package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(collectionsCmd)
}

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the collections of the catalog as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		collections, err := a.Catalog.ListCollections(cmd.Context())
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(collections)
		if err != nil {
			return fmt.Errorf("failed to marshal collections: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
