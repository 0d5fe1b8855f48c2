// Package geomodel turns GeoJSON feature collections into the polygon outlines
// drawn on the map panel.
package geomodel

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/geoscope/internal/catalog"
)

// NameProperty is the feature property holding the display name.
const NameProperty = "ADMIN"

// fragmentRatio is the share of the largest polygon's area below which
// smaller polygons of the same feature are dropped.
const fragmentRatio = 0.20

// Membership maps a continent name to the set of its country names.
type Membership map[string]map[string]struct{}

// Feature is one named outline.
type Feature struct {
	Name     string
	Geometry *geom.MultiPolygon
}

// Bounds is the axis-aligned extent of a model. An empty model has
// min > max on both axes.
type Bounds struct {
	X [2]float64
	Y [2]float64
}

// Empty reports whether the bounds enclose nothing drawable.
func (b Bounds) Empty() bool {
	return b.X[0] > b.X[1] || b.Y[0] > b.Y[1]
}

// Model is an immutable set of outlines plus the continent index used to
// resolve highlights.
type Model struct {
	features   []Feature
	bounds     Bounds
	membership Membership
}

// Build converts a feature collection into a model. Features without a
// polygonal geometry are skipped.
func Build(fc *geojson.FeatureCollection, membership Membership) *Model {
	m := &Model{membership: membership}
	log := zap.L().With(zap.String("component", "geomodel"))

	if fc != nil {
		for i, f := range fc.Features {
			if f == nil {
				continue
			}
			name, _ := f.Properties[NameProperty].(string)

			mp, err := ToMultiPolygon(f.Geometry)
			if err != nil {
				log.Debug("skipping feature", zap.Int("index", i), zap.String("name", name), zap.Error(err))
				continue
			}

			m.features = append(m.features, Feature{Name: name, Geometry: FilterFragments(mp)})
		}
	}

	b := geom.NewBounds(geom.XY)
	for _, f := range m.features {
		b.Extend(f.Geometry)
	}
	m.bounds = Bounds{
		X: [2]float64{b.Min(0), b.Max(0)},
		Y: [2]float64{b.Min(1), b.Max(1)},
	}
	if len(m.features) == 0 {
		m.bounds = emptyBounds()
	}
	return m
}

func emptyBounds() Bounds {
	return Bounds{
		X: [2]float64{math.Inf(1), math.Inf(-1)},
		Y: [2]float64{math.Inf(1), math.Inf(-1)},
	}
}

// ToMultiPolygon promotes a polygon to a one-part multipolygon and passes
// multipolygons through. Any other geometry is rejected.
func ToMultiPolygon(g geom.T) (*geom.MultiPolygon, error) {
	switch g := g.(type) {
	case *geom.MultiPolygon:
		return g, nil
	case *geom.Polygon:
		mp := geom.NewMultiPolygon(g.Layout())
		if err := mp.Push(g); err != nil {
			return nil, catalog.NewDataError(catalog.KindGeometry, "", eris.Wrap(err, "geomodel: promote polygon"))
		}
		return mp, nil
	case nil:
		return nil, catalog.NewDataError(catalog.KindGeometry, "", eris.New("geomodel: feature has no geometry"))
	}
	return nil, catalog.NewDataError(catalog.KindGeometry, "", eris.Errorf("geomodel: unsupported geometry %T", g))
}

// FilterFragments drops the polygons of mp whose exterior area is below 20%
// of the largest one. If nothing would survive, mp is returned unchanged.
func FilterFragments(mp *geom.MultiPolygon) *geom.MultiPolygon {
	n := mp.NumPolygons()
	if n <= 1 {
		return mp
	}

	areas := make([]float64, n)
	var maxArea float64
	for i := range n {
		areas[i] = exteriorArea(mp.Polygon(i))
		if areas[i] > maxArea {
			maxArea = areas[i]
		}
	}
	threshold := maxArea * fragmentRatio

	kept := geom.NewMultiPolygon(mp.Layout())
	for i := range n {
		if areas[i] >= threshold {
			if err := kept.Push(mp.Polygon(i)); err != nil {
				return mp
			}
		}
	}
	if kept.NumPolygons() == 0 {
		return mp
	}
	return kept
}

func exteriorArea(p *geom.Polygon) float64 {
	if p.NumLinearRings() == 0 {
		return 0
	}
	ring := p.LinearRing(0)
	return ShoelaceArea(ring.FlatCoords(), ring.Stride())
}

// ShoelaceArea returns the unsigned planar area of a ring given as flat
// coordinates. The ring may be open or closed.
func ShoelaceArea(flat []float64, stride int) float64 {
	if stride < 2 {
		return 0
	}
	n := len(flat) / stride
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range n {
		j := (i + 1) % n
		ax, ay := flat[i*stride], flat[i*stride+1]
		bx, by := flat[j*stride], flat[j*stride+1]
		sum += ax*by - bx*ay
	}
	return math.Abs(sum * 0.5)
}

// FeatureCount returns the number of retained features.
func (m *Model) FeatureCount() int {
	return len(m.features)
}

// Features returns the retained features in source order.
func (m *Model) Features() []Feature {
	return m.features
}

// Bounds returns the extent of every ring of every retained feature.
func (m *Model) Bounds() Bounds {
	return m.bounds
}

// IsContinent reports whether selector names a continent of the index.
func (m *Model) IsContinent(selector string) bool {
	_, ok := m.membership[selector]
	return ok
}

// Highlighted returns the indices of the features selected by selector: all
// members of a continent, or the feature named exactly selector.
func (m *Model) Highlighted(selector string) map[int]bool {
	out := make(map[int]bool)
	if countries, ok := m.membership[selector]; ok {
		for i, f := range m.features {
			if _, member := countries[f.Name]; member {
				out[i] = true
			}
		}
		return out
	}
	for i, f := range m.features {
		if f.Name == selector {
			out[i] = true
		}
	}
	return out
}
