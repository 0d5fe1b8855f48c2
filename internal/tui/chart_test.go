package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geoscope/internal/gdp"
)

func TestRenderChart(t *testing.T) {
	series := []gdp.Point{{Year: 1960, Value: 1e9}, {Year: 1961, Value: 2e9}, {Year: 1962, Value: 3.4e9}}
	out := stripped(RenderChart("Poland GDP", series, 40, 10))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)

	assert.Equal(t, "Poland GDP", lines[0])
	for _, l := range lines[1:] {
		assert.Equal(t, 40, lipgloss.Width(l))
	}
	assert.True(t, strings.HasPrefix(lines[1], "     3.7B│"), "top tick is 110%% of the max: %q", lines[1])
	assert.True(t, strings.HasPrefix(lines[8], "        0│"), "bottom tick is zero: %q", lines[8])

	last := lines[9]
	assert.Contains(t, last, "1960")
	assert.Contains(t, last, "1962")
	assert.Less(t, strings.Index(last, "1960"), strings.Index(last, "1962"))
}

func TestRenderChartBarsGrowWithValue(t *testing.T) {
	series := []gdp.Point{{Year: 2000, Value: 1e9}, {Year: 2001, Value: 1e10}}
	out := stripped(RenderChart("x", series, yLabelWidth+1+20, 10))
	lines := strings.Split(out, "\n")[1:9]

	filled := func(cell int) int {
		n := 0
		for _, l := range lines {
			if []rune(l)[yLabelWidth+1+cell] != ' ' {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, filled(0))
	assert.Equal(t, 8, filled(19), "largest value spans the plot height")
}

func TestRenderChartEmpty(t *testing.T) {
	out := stripped(RenderChart("Atlantis GDP", nil, 40, 10))
	assert.Equal(t, "Atlantis GDP\nNo GDP series available", out)

	out = stripped(RenderChart("tiny", []gdp.Point{{Year: 2000, Value: 1}}, 5, 2))
	assert.Contains(t, out, "No GDP series available")
}

func TestRenderChartSinglePoint(t *testing.T) {
	out := stripped(RenderChart("one", []gdp.Point{{Year: 2020, Value: 5e9}}, 30, 6))
	assert.Contains(t, out, "2020")
}

func TestXLabelsSkipOverlap(t *testing.T) {
	row := xLabels(1960, 2023, 12)
	assert.Equal(t, "          1960 1993   ", row)
}
