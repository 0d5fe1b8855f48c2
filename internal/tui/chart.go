package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sells-group/geoscope/internal/gdp"
)

const (
	yLabelWidth = 9
	yTicks      = 4
	xTicks      = 6
)

// RenderChart draws series as a braille bar chart filling w x h cells. The
// first row holds title and the last row holds the year labels.
func RenderChart(title string, series []gdp.Point, w, h int) string {
	rows := []string{titleStyle.Render(title)}
	plotH := h - 2
	plotW := w - yLabelWidth - 1
	if len(series) == 0 || plotH < 1 || plotW < 1 {
		rows = append(rows, dimStyle.Render("No GDP series available"))
		return strings.Join(rows, "\n")
	}

	minYear, maxYear := series[0].Year, series[len(series)-1].Year
	var maxValue float64
	for _, p := range series {
		maxValue = max(maxValue, p.Value)
	}
	yMax := math.Ceil(maxValue * 1.1)
	if yMax <= 0 {
		yMax = 1
	}

	c := newCanvas(plotW, plotH)
	wDot, hDot := c.dots()
	years := [2]float64{float64(minYear), float64(maxYear)}
	for _, p := range series {
		x := int(normalize(float64(p.Year), years) * float64(wDot-1))
		top := int((1 - max(p.Value, 0)/yMax) * float64(hDot-1))
		c.line(x, hDot-1, x, top, true)
	}
	plot := c.render(axisStyle, barStyle)

	labels := yLabels(yMax, plotH)
	for i, line := range plot {
		rows = append(rows, axisStyle.Render(labels[i]+"│")+line)
	}
	rows = append(rows, axisStyle.Render(xLabels(minYear, maxYear, plotW)))
	return strings.Join(rows, "\n")
}

// yLabels returns one left-gutter string per plot row with evenly spaced
// value ticks in billions.
func yLabels(yMax float64, plotH int) []string {
	out := make([]string, plotH)
	for i := range out {
		out[i] = strings.Repeat(" ", yLabelWidth)
	}
	for i := 0; i <= yTicks; i++ {
		f := float64(i) / yTicks
		row := int(math.Round((1 - f) * float64(plotH-1)))
		label := "0"
		if i > 0 {
			label = fmt.Sprintf("%.1fB", yMax*f/1e9)
		}
		out[row] = fmt.Sprintf("%*s", yLabelWidth, label)
	}
	return out
}

// xLabels lays out year ticks under the plot. Ticks that would overlap the
// previous label are dropped.
func xLabels(minYear, maxYear, plotW int) string {
	row := []rune(strings.Repeat(" ", yLabelWidth+1+plotW))
	step := max(int(math.Ceil(float64(maxYear-minYear)/xTicks)), 1)
	years := [2]float64{float64(minYear), float64(maxYear)}
	next := 0
	for year := minYear; year <= maxYear; year += step {
		label := strconv.Itoa(year)
		col := yLabelWidth + 1 + int(normalize(float64(year), years)*float64(plotW-1))
		col = min(col, len(row)-len(label))
		if col < next || col < 0 {
			continue
		}
		copy(row[col:], []rune(label))
		next = col + len(label) + 1
	}
	return string(row)
}

// chartTitle is the heading of the full-screen chart view.
func chartTitle(country, toggleKey string) string {
	return fmt.Sprintf("%s GDP history (USD, press %s to return to map view)", country, toggleKey)
}

var (
	axisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	barStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
)
