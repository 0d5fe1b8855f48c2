package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/geoscope/internal/gdp"
)

var gdpCmd = &cobra.Command{
	Use:   "gdp <country>",
	Short: "Print the GDP series of a country",
	Long:  "Prints one line per year as year, value in USD and a human readable figure, separated by tabs.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		latestOnly, _ := cmd.Flags().GetBool("latest")

		idx, err := gdp.Load(cfg.Data.GDPFile())
		if err != nil {
			return err
		}

		var series []gdp.Point
		if latestOnly {
			if p, ok := idx.Latest(name); ok {
				series = []gdp.Point{p}
			}
		} else {
			series, _ = idx.Series(name)
		}
		if len(series) == 0 {
			return eris.Errorf("gdp: no series for %q", name)
		}

		out := cmd.OutOrStdout()
		for _, p := range series {
			fmt.Fprintf(out, "%d\t%.0f\t%s\n", p.Year, p.Value, gdp.FormatMagnitude(p.Value))
		}
		return nil
	},
}

func init() {
	gdpCmd.Flags().Bool("latest", false, "print only the most recent year")
	rootCmd.AddCommand(gdpCmd)
}
