package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geoscope/internal/config"
)

// annotationTUI marks commands that own the terminal. Their logs go to
// log.file or nowhere.
const annotationTUI = "tui"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "geoscope",
	Short: "Terminal explorer for world geography and GDP",
	Long:  "Drill down from the world map through continents to countries, with outlines, country facts and World Bank GDP history in the terminal.",
	Annotations: map[string]string{
		annotationTUI: "true",
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		applyFlagOverrides(cmd, cfg)

		if cmd.Annotations[annotationTUI] == "true" && cfg.Log.File == "" {
			config.SilenceLogger()
			return nil
		}
		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExplore(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "dataset directory (default: from config or ./data)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "trivia random seed, 0 seeds from the clock (default: from config)")
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	if f := cmd.Flags().Lookup("data-dir"); f != nil && f.Changed {
		c.Data.Dir = f.Value.String()
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		seed, _ := cmd.Flags().GetUint64("seed")
		c.Data.Seed = seed
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
