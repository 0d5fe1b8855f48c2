package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sells-group/geoscope/internal/geomodel"
)

// brailleBase is U+2800, the empty braille pattern. Each terminal cell holds
// a 2x4 grid of dots.
const brailleBase = 0x2800

// dotBits maps a (column, row) position inside a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// canvas is a braille raster addressed in dots. Cells touched by a hot
// stroke are rendered in the highlight style.
type canvas struct {
	w, h int
	mask [][]uint8
	hot  [][]bool
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, mask: make([][]uint8, h), hot: make([][]bool, h)}
	for y := range h {
		c.mask[y] = make([]uint8, w)
		c.hot[y] = make([]bool, w)
	}
	return c
}

// dots returns the raster size in dots.
func (c *canvas) dots() (int, int) { return c.w * 2, c.h * 4 }

func (c *canvas) set(x, y int, hot bool) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.w || cy >= c.h {
		return
	}
	c.mask[cy][cx] |= dotBits[x%2][y%4]
	if hot {
		c.hot[cy][cx] = true
	}
}

// line draws a segment with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int, hot bool) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, hot)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *canvas) cell(x, y int) rune {
	if c.mask[y][x] == 0 {
		return ' '
	}
	return rune(brailleBase + int(c.mask[y][x]))
}

// render returns one string per cell row. Runs of hot cells are wrapped in
// hotStyle and the rest in baseStyle.
func (c *canvas) render(baseStyle, hotStyle lipgloss.Style) []string {
	out := make([]string, c.h)
	var sb, run strings.Builder
	for y := range c.h {
		sb.Reset()
		for x := 0; x < c.w; {
			hot := c.hot[y][x]
			run.Reset()
			for ; x < c.w && c.hot[y][x] == hot; x++ {
				run.WriteRune(c.cell(x, y))
			}
			if hot {
				sb.WriteString(hotStyle.Render(run.String()))
			} else {
				sb.WriteString(baseStyle.Render(run.String()))
			}
		}
		out[y] = sb.String()
	}
	return out
}

// projection maps model coordinates onto canvas dots, y up.
type projection struct {
	b          geomodel.Bounds
	wDot, hDot int
}

func newProjection(b geomodel.Bounds, c *canvas) (projection, bool) {
	if b.Empty() || c.w == 0 || c.h == 0 {
		return projection{}, false
	}
	w, h := c.dots()
	return projection{b: b, wDot: w, hDot: h}, true
}

func (p projection) point(x, y float64) (int, int) {
	nx := normalize(x, p.b.X)
	ny := normalize(y, p.b.Y)
	return int(nx * float64(p.wDot-1)), int((1 - ny) * float64(p.hDot-1))
}

// normalize maps v into [0, 1] over r. A zero-width range maps to its center.
func normalize(v float64, r [2]float64) float64 {
	span := r[1] - r[0]
	if span <= 0 {
		return 0.5
	}
	return (v - r[0]) / span
}

// drawMap strokes the exterior ring of every polygon of m, then restrokes
// the features selected by highlight as hot.
func drawMap(c *canvas, m *geomodel.Model, highlight string) {
	if m == nil {
		return
	}
	p, ok := newProjection(m.Bounds(), c)
	if !ok {
		return
	}
	features := m.Features()
	for _, f := range features {
		strokeFeature(c, p, f, false)
	}
	if highlight == "" {
		return
	}
	for i := range m.Highlighted(highlight) {
		strokeFeature(c, p, features[i], true)
	}
}

func strokeFeature(c *canvas, p projection, f geomodel.Feature, hot bool) {
	for i := range f.Geometry.NumPolygons() {
		poly := f.Geometry.Polygon(i)
		if poly.NumLinearRings() == 0 {
			continue
		}
		ring := poly.LinearRing(0)
		flat, stride := ring.FlatCoords(), ring.Stride()
		n := len(flat) / stride
		if n == 0 {
			continue
		}
		px, py := p.point(flat[(n-1)*stride], flat[(n-1)*stride+1])
		for j := range n {
			x, y := p.point(flat[j*stride], flat[j*stride+1])
			c.line(px, py, x, y, hot)
			px, py = x, y
		}
	}
}

// RenderMap draws m into a w x h block of braille cells with the features
// selected by highlight in the highlight color.
func RenderMap(m *geomodel.Model, highlight string, w, h int) string {
	c := newCanvas(w, h)
	drawMap(c, m, highlight)
	return strings.Join(c.render(mapStyle, highlightStyle), "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
