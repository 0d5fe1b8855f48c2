// Package navigator implements the world → continent → country drill-down
// state machine behind the explorer.
package navigator

import (
	"fmt"
	"slices"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/geoscope/internal/catalog"
	"github.com/sells-group/geoscope/internal/gdp"
	"github.com/sells-group/geoscope/internal/geomodel"
)

// HelpText is appended to the status text of every map view.
const HelpText = `↑/↓: move in list
Enter: drill down (world → continent → country)
Esc / Backspace: back
Tab: GDP chart (country view)
q: quit`

// Catalog is the data source the controller drives. *catalog.Catalog
// satisfies it.
type Catalog interface {
	LoadList(level catalog.Level, key string) ([]string, error)
	CachedList(level catalog.Level, key string) ([]string, bool)
	LoadGeometrySource(level catalog.Level, key string) (*geojson.FeatureCollection, error)
	CountryInfo(name string) (catalog.CountryInfo, bool)
	RandomFact(name string) (string, bool)
	ContinentMembership() map[string]map[string]struct{}
}

// Action is one discrete input to the controller.
type Action int

// Controller inputs.
const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionConfirm
	ActionBack
	ActionToggleChart
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionConfirm:
		return "confirm"
	case ActionBack:
		return "back"
	case ActionToggleChart:
		return "toggle_chart"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Frame records where a drill-down started: the level left, the key needed
// to reload it, and the item that was selected there.
type Frame struct {
	Level catalog.Level
	Key   string
	Focus string
}

// Controller owns the navigation state. It is not safe for concurrent use.
type Controller struct {
	cat Catalog
	gdp *gdp.Index
	log *zap.Logger

	level    catalog.Level
	items    []string
	selected int
	history  []Frame

	mapModel *geomodel.Model
	info     string

	country   *catalog.CountryInfo
	fact      string
	hasFact   bool
	latest    *gdp.Point
	series    []gdp.Point
	showChart bool
}

// New seeds a controller at the world level. Failing to load the world list
// or geometry is fatal. idx may be nil when no GDP table is available.
func New(cat Catalog, idx *gdp.Index) (*Controller, error) {
	c := &Controller{
		cat:   cat,
		gdp:   idx,
		log:   zap.L().With(zap.String("component", "navigator")),
		level: catalog.World,
	}

	items, err := cat.LoadList(catalog.World, catalog.WorldKey)
	if err != nil {
		return nil, eris.Wrap(err, "navigator: load world list")
	}
	fc, err := cat.LoadGeometrySource(catalog.World, catalog.WorldKey)
	if err != nil {
		return nil, eris.Wrap(err, "navigator: load world geometry")
	}

	c.items = items
	c.applyMap(geomodel.Build(fc, cat.ContinentMembership()), "World")
	return c, nil
}

// Level returns the current hierarchy level.
func (c *Controller) Level() catalog.Level { return c.level }

// Items returns the current item list.
func (c *Controller) Items() []string { return c.items }

// Selected returns the selection index. It is meaningless when Items is empty.
func (c *Controller) Selected() int { return c.selected }

// SelectedName returns the selected item, if any.
func (c *Controller) SelectedName() (string, bool) {
	if c.selected < 0 || c.selected >= len(c.items) {
		return "", false
	}
	return c.items[c.selected], true
}

// HighlightKey is the selector the map highlights: the selected item.
func (c *Controller) HighlightKey() string {
	name, _ := c.SelectedName()
	return name
}

// History returns a copy of the back stack, oldest first.
func (c *Controller) History() []Frame { return slices.Clone(c.history) }

// Map returns the current geometry model.
func (c *Controller) Map() *geomodel.Model { return c.mapModel }

// Info returns the status text of the current map view.
func (c *Controller) Info() string { return c.info }

// CountryInfo returns the metadata of the displayed country.
func (c *Controller) CountryInfo() (catalog.CountryInfo, bool) {
	if c.country == nil {
		return catalog.CountryInfo{}, false
	}
	return *c.country, true
}

// Fact returns the trivia entry drawn for the displayed country.
func (c *Controller) Fact() (string, bool) { return c.fact, c.hasFact }

// GDP returns the latest GDP observation of the displayed country.
func (c *Controller) GDP() (gdp.Point, bool) {
	if c.latest == nil {
		return gdp.Point{}, false
	}
	return *c.latest, true
}

// GDPSeries returns the full series loaded for the chart view.
func (c *Controller) GDPSeries() []gdp.Point { return c.series }

// ChartActive reports whether the GDP chart replaces the map view.
func (c *Controller) ChartActive() bool { return c.showChart }

// Handle applies one action and reports whether the session should end.
// While the chart is showing only the chart toggle and quit are honored.
func (c *Controller) Handle(a Action) bool {
	if a == ActionQuit {
		return true
	}
	if c.showChart && a != ActionToggleChart {
		return false
	}

	switch a {
	case ActionUp:
		c.move(-1)
	case ActionDown:
		c.move(1)
	case ActionConfirm:
		c.confirm()
	case ActionBack:
		c.back()
	case ActionToggleChart:
		c.toggleChart()
	}
	return false
}

func (c *Controller) move(delta int) {
	if len(c.items) == 0 {
		c.selected = 0
		return
	}
	c.selected = min(max(c.selected+delta, 0), len(c.items)-1)
}

func (c *Controller) confirm() {
	name, ok := c.SelectedName()
	if !ok {
		return
	}
	switch c.level {
	case catalog.World:
		c.enterContinent(name)
	case catalog.Continent:
		c.enterCountry(name)
	}
}

func (c *Controller) enterContinent(continent string) {
	items, err := c.cat.LoadList(catalog.Continent, continent)
	if err != nil {
		c.log.Warn("continent list unavailable", zap.String("continent", continent), zap.Error(err))
		return
	}

	c.history = append(c.history, Frame{Level: catalog.World, Key: continent, Focus: continent})
	c.setLevel(catalog.Continent, continent)
	c.items = items
	c.selected = 0
	c.loadMap(catalog.Continent, continent, continent)
}

func (c *Controller) enterCountry(country string) {
	if len(c.history) == 0 {
		return
	}
	continent := c.history[len(c.history)-1].Key

	c.history = append(c.history, Frame{Level: catalog.Continent, Key: continent, Focus: country})
	c.setLevel(catalog.Country, country)
	c.items = []string{country}
	c.selected = 0
	c.loadMap(catalog.Country, country, country)

	if info, ok := c.cat.CountryInfo(country); ok {
		c.country = &info
	}
	c.fact, c.hasFact = c.cat.RandomFact(country)
	if p, ok := c.gdp.Latest(country); ok {
		c.latest = &p
	}
}

func (c *Controller) back() {
	if len(c.history) == 0 {
		return
	}
	frame := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]

	key, title := frame.Key, frame.Key
	if frame.Level == catalog.World {
		key, title = catalog.WorldKey, "World"
	}
	c.setLevel(frame.Level, key)

	items, err := c.cat.LoadList(frame.Level, key)
	if err != nil {
		if cached, ok := c.cat.CachedList(frame.Level, key); ok {
			items = cached
		} else {
			c.log.Warn("list unavailable on back", zap.Stringer("level", frame.Level), zap.String("key", key), zap.Error(err))
			items = c.items
		}
	}
	c.items = items
	c.selected = max(slices.Index(c.items, frame.Focus), 0)

	c.loadMap(frame.Level, key, title)
}

func (c *Controller) toggleChart() {
	if c.level != catalog.Country || c.latest == nil {
		return
	}
	c.showChart = !c.showChart
	if !c.showChart {
		c.series = nil
		return
	}
	name, _ := c.SelectedName()
	if series, ok := c.gdp.Series(name); ok {
		c.series = series
	}
}

// setLevel switches level and drops everything tied to the previous country.
func (c *Controller) setLevel(level catalog.Level, key string) {
	c.log.Debug("navigate",
		zap.Stringer("from", c.level),
		zap.Stringer("to", level),
		zap.String("key", key),
	)
	c.level = level
	c.country = nil
	c.fact, c.hasFact = "", false
	c.latest = nil
	c.series = nil
	c.showChart = false
}

// loadMap replaces the map with the geometry of (level, key). On failure
// the previous map and status text stay.
func (c *Controller) loadMap(level catalog.Level, key, title string) {
	fc, err := c.cat.LoadGeometrySource(level, key)
	if err != nil {
		c.log.Warn("geometry unavailable", zap.Stringer("level", level), zap.String("key", key), zap.Error(err))
		return
	}
	c.applyMap(geomodel.Build(fc, c.cat.ContinentMembership()), title)
}

func (c *Controller) applyMap(m *geomodel.Model, title string) {
	c.mapModel = m
	c.info = fmt.Sprintf("%s – %d objects\n\n%s", title, m.FeatureCount(), HelpText)
}
