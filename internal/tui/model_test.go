package tui

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geoscope/internal/catalog"
	"github.com/sells-group/geoscope/internal/catalog/catalogtest"
	"github.com/sells-group/geoscope/internal/gdp"
	"github.com/sells-group/geoscope/internal/navigator"
)

func newModel(t *testing.T) (Model, *navigator.Controller) {
	t.Helper()
	cat, err := catalog.New(catalogtest.Write(t), catalog.WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	rows, err := gdp.ReadCSV(strings.NewReader(catalogtest.GDPCSV))
	require.NoError(t, err)

	ctrl, err := navigator.New(cat, gdp.FromRows(rows))
	require.NoError(t, err)

	m := New(ctrl, DefaultKeyMap(), 0.6)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	return next.(Model), ctrl
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestViewBeforeResize(t *testing.T) {
	m := New(nil, DefaultKeyMap(), 0.6)
	assert.Empty(t, m.View())
	assert.Nil(t, m.Init())
}

func TestViewWorld(t *testing.T) {
	m, _ := newModel(t)
	view := m.View()

	assert.Contains(t, view, "Selection")
	assert.Contains(t, view, ">> Africa")
	assert.Contains(t, view, "Europe")
	assert.Contains(t, view, "World – 5 objects")
	assert.Contains(t, view, "view GDP data")
	assert.Contains(t, view, "view a fun fact")

	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 120)
	}
}

func TestDrillDownToCountry(t *testing.T) {
	m, ctrl := newModel(t)

	m, _ = press(t, m, keyDown, keyDown, keyEnter)
	require.Equal(t, catalog.Continent, ctrl.Level())
	assert.Contains(t, m.View(), ">> Germany")

	m, _ = press(t, m, keyDown, keyEnter)
	require.Equal(t, catalog.Country, ctrl.Level())

	view := m.View()
	assert.Contains(t, view, "Capital: Warsaw")
	assert.Contains(t, view, "Currency: PLN")
	assert.Contains(t, view, "GDP (1962):")
	assert.Contains(t, view, "3.40 billion USD")
	assert.Contains(t, view, "Poland has a desert.")

	m, _ = press(t, m, keyTab)
	require.True(t, ctrl.ChartActive())
	assert.Contains(t, m.View(), "Poland GDP history")

	// Back is swallowed while the chart is up
	m, _ = press(t, m, keyEsc)
	assert.Equal(t, catalog.Country, ctrl.Level())

	m, _ = press(t, m, keyTab, keyEsc)
	assert.False(t, ctrl.ChartActive())
	assert.Equal(t, catalog.Continent, ctrl.Level())
	assert.Contains(t, m.View(), ">> Poland")
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUnboundKeyIgnored(t *testing.T) {
	m, ctrl := newModel(t)
	_, cmd := press(t, m, runes("x"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, ctrl.Selected())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Poland", truncate("Poland", 6))
	assert.Equal(t, "Pola…", truncate("Poland", 5))
	assert.Equal(t, "P", truncate("Poland", 1))
}
