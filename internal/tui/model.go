// Package tui renders the navigator in the terminal with bubbletea and turns
// key presses into navigator actions.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sells-group/geoscope/internal/catalog"
	"github.com/sells-group/geoscope/internal/gdp"
	"github.com/sells-group/geoscope/internal/navigator"
)

// Styles
var (
	borderCol = lipgloss.Color("#243141")

	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	mapStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E6E6"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

const (
	listRatio     = 0.2
	selectMarker  = ">> "
	minPanelWidth = 8
)

// Model adapts a navigator.Controller to bubbletea.
type Model struct {
	ctrl     *navigator.Controller
	keys     KeyMap
	help     help.Model
	mapRatio float64

	width  int
	height int
}

// New returns a model driving ctrl. mapRatio is the share of the width given
// to the map panel.
func New(ctrl *navigator.Controller, keys KeyMap, mapRatio float64) Model {
	return Model{
		ctrl:     ctrl,
		keys:     keys,
		help:     help.New(),
		mapRatio: mapRatio,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		a := m.keys.Action(msg)
		if a == navigator.ActionNone {
			return m, nil
		}
		if m.ctrl.Handle(a) {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.ctrl.ChartActive() {
		name, _ := m.ctrl.SelectedName()
		title := chartTitle(name, m.keys.ToggleChart.Help().Key)
		return RenderChart(title, m.ctrl.GDPSeries(), m.width, m.height)
	}

	footer := m.help.View(m.keys)
	bodyH := max(m.height-lipgloss.Height(footer), 6)

	listW := max(int(float64(m.width)*listRatio), minPanelWidth)
	mapW := max(int(float64(m.width)*m.mapRatio), minPanelWidth)
	sideW := max(m.width-listW-mapW, minPanelWidth)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.listPanel(listW, bodyH),
		m.mapPanel(mapW, bodyH),
		m.sidePanel(sideW, bodyH),
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// panel frames content in a titled box of outer size w x h.
func panel(title, content string, w, h int) string {
	innerW, innerH := max(w-2, 1), max(h-2, 1)
	lines := strings.Split(content, "\n")
	if len(lines) > innerH-1 {
		lines = lines[:innerH-1]
	}
	body := titleStyle.Render(truncate(title, innerW)) + "\n" + strings.Join(lines, "\n")
	return boxStyle.Width(innerW).Height(innerH).MaxHeight(h).Render(body)
}

func (m Model) listPanel(w, h int) string {
	items := m.ctrl.Items()
	rows := max(h-3, 1)
	start := max(m.ctrl.Selected()-rows+1, 0)
	end := min(start+rows, len(items))

	var sb strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			sb.WriteByte('\n')
		}
		label := truncate(items[i], max(w-2-len(selectMarker), 1))
		if i == m.ctrl.Selected() {
			sb.WriteString(selectedStyle.Render(selectMarker + label))
		} else {
			sb.WriteString("   " + label)
		}
	}
	return panel("Selection", sb.String(), w, h)
}

func (m Model) mapPanel(w, h int) string {
	title := m.ctrl.HighlightKey()
	if title == "" {
		title = "Map"
	}
	return panel(title, RenderMap(m.ctrl.Map(), m.ctrl.HighlightKey(), w-2, h-3), w, h)
}

func (m Model) sidePanel(w, h int) string {
	infoH := h * 4 / 10
	gdpH := h * 3 / 10
	factH := h - infoH - gdpH

	return lipgloss.JoinVertical(lipgloss.Left,
		panel("Info", wrap(m.infoText(), w-2), w, infoH),
		panel("GDP", wrap(m.gdpText(), w-2), w, gdpH),
		panel("Did you know?", wrap(m.factText(), w-2), w, factH),
	)
}

func (m Model) infoText() string {
	ci, ok := m.ctrl.CountryInfo()
	if !ok {
		return m.ctrl.Info()
	}
	return formatCountryInfo(ci)
}

func formatCountryInfo(ci catalog.CountryInfo) string {
	return fmt.Sprintf("%s\nCapital: %s\nArea: %.0f km²\nPopulation: %d\nCurrency: %s",
		ci.Name, ci.Capital, ci.Area, ci.Population, ci.Currency)
}

func (m Model) gdpText() string {
	p, ok := m.ctrl.GDP()
	if !ok {
		return "Select a country to view GDP data"
	}
	return fmt.Sprintf("GDP (%d):\n%s\nPress %s to view chart!",
		p.Year, gdp.FormatMagnitude(p.Value), m.keys.ToggleChart.Help().Key)
}

func (m Model) factText() string {
	if fact, ok := m.ctrl.Fact(); ok {
		return fact
	}
	return "Select a country to view a fun fact"
}

// wrap soft-wraps s to width cells.
func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(max(width, 1)).Render(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
