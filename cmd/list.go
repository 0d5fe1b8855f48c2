package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/geoscope/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list [continent]",
	Short: "Print the continents, or the countries of a continent",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}

		level, key := catalog.World, catalog.WorldKey
		if len(args) > 0 {
			level, key = catalog.Continent, strings.Join(args, " ")
		}
		items, err := cat.LoadList(level, key)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, item := range items {
			fmt.Fprintln(out, item)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
