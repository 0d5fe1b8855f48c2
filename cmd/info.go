package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/geoscope/internal/catalog"
	"github.com/sells-group/geoscope/internal/gdp"
	"github.com/sells-group/geoscope/internal/geomodel"
)

var infoCmd = &cobra.Command{
	Use:   "info <country>",
	Short: "Print what the explorer knows about a country",
	Long:  "Prints country metadata, a random fact, the latest GDP figure and the number of outline features.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		idx := loadGDP()

		out := cmd.OutOrStdout()
		found := false

		if ci, ok := cat.CountryInfo(name); ok {
			found = true
			fmt.Fprintln(out, ci.Name)
			fmt.Fprintf(out, "Capital: %s\n", ci.Capital)
			fmt.Fprintf(out, "Area: %.0f km²\n", ci.Area)
			fmt.Fprintf(out, "Population: %d\n", ci.Population)
			fmt.Fprintf(out, "Currency: %s\n", ci.Currency)
		} else {
			fmt.Fprintln(out, name)
		}

		if p, ok := idx.Latest(name); ok {
			found = true
			fmt.Fprintf(out, "GDP (%d): %s\n", p.Year, gdp.FormatMagnitude(p.Value))
		} else {
			fmt.Fprintln(out, "GDP: n/a")
		}

		if fact, ok := cat.RandomFact(name); ok {
			found = true
			fmt.Fprintf(out, "Did you know? %s\n", fact)
		}

		if fc, err := cat.LoadGeometrySource(catalog.Country, name); err == nil {
			found = true
			fmt.Fprintf(out, "Outline features: %d\n", geomodel.Build(fc, nil).FeatureCount())
		} else {
			fmt.Fprintln(out, "Outline features: n/a")
		}

		if !found {
			return eris.Errorf("info: no data for %q", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
