package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/geoscope/internal/dataset"
)

var buildDataCmd = &cobra.Command{
	Use:   "build-data",
	Short: "Generate the dataset layout from a Natural Earth shapefile",
	Long: "Reads an admin-0 countries shapefile, groups countries by the CONTINENT attribute and writes " +
		"the list and GeoJSON files the explorer reads. country_info.json and funfacts.json are not touched.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		shpPath, _ := cmd.Flags().GetString("shp")
		outDir, _ := cmd.Flags().GetString("out")
		if shpPath == "" {
			return eris.New("build-data: --shp is required")
		}
		if outDir == "" {
			outDir = cfg.Data.Dir
		}

		countries, err := dataset.ReadShapefile(shpPath)
		if err != nil {
			return err
		}
		s, err := dataset.Build(outDir, countries)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files: %d continents, %d countries to %s\n",
			s.Files, s.Continents, s.Countries, outDir)
		return nil
	},
}

func init() {
	buildDataCmd.Flags().String("shp", "", "path to the admin-0 .shp file (required)")
	buildDataCmd.Flags().String("out", "", "output directory (default: data.dir)")
	rootCmd.AddCommand(buildDataCmd)
}
