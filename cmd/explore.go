package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geoscope/internal/navigator"
	"github.com/sells-group/geoscope/internal/tui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Open the interactive explorer (default)",
	Long:  "Starts the full-screen explorer. Logs go to log.file when set and are discarded otherwise.",
	Annotations: map[string]string{
		annotationTUI: "true",
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExplore(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command) error {
	m, err := newExplorer()
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return eris.Wrap(err, "explore: run terminal ui")
	}
	return nil
}

// newExplorer wires a session: catalog, GDP table, controller and key map.
func newExplorer() (tui.Model, error) {
	session := uuid.New().String()
	zap.ReplaceGlobals(zap.L().With(zap.String("session", session)))
	log := zap.L().With(zap.String("component", "explore"))

	cat, err := openCatalog()
	if err != nil {
		return tui.Model{}, err
	}
	idx := loadGDP()

	ctrl, err := navigator.New(cat, idx)
	if err != nil {
		return tui.Model{}, eris.Wrap(err, "explore: start navigator")
	}

	keys, err := tui.LoadKeyMap(cfg.UI.KeymapPath)
	if err != nil {
		log.Warn("keymap unavailable, using defaults", zap.String("path", cfg.UI.KeymapPath), zap.Error(err))
	}

	log.Info("session started",
		zap.String("data_dir", cfg.Data.Dir),
		zap.Int("gdp_countries", idx.Len()),
	)
	return tui.New(ctrl, keys, cfg.UI.MapRatio), nil
}
