// Package dataset builds the explorer's on-disk layout from a Natural Earth
// admin-0 shapefile.
package dataset

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// Shapefile attribute names.
const (
	FieldName      = "ADMIN"
	FieldContinent = "CONTINENT"
)

// Country is one admin-0 record.
type Country struct {
	Name      string
	Continent string
	Geometry  *geom.MultiPolygon
}

// ReadShapefile returns every polygon record of the shapefile at path that
// carries both a name and a continent.
func ReadShapefile(path string) ([]Country, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fieldIdx := make(map[string]int)
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToUpper(name)] = i
	}
	nameIdx, ok := fieldIdx[FieldName]
	if !ok {
		return nil, eris.Errorf("dataset: %s has no %s field", path, FieldName)
	}
	contIdx, ok := fieldIdx[FieldContinent]
	if !ok {
		return nil, eris.Errorf("dataset: %s has no %s field", path, FieldContinent)
	}

	var out []Country
	var skipped int
	for reader.Next() {
		n, shape := reader.Shape()
		name := attribute(reader, nameIdx)
		continent := attribute(reader, contIdx)

		poly, ok := shape.(*shp.Polygon)
		if !ok || name == "" || continent == "" {
			skipped++
			continue
		}
		mp := polygonToMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}
		zap.L().Debug("dataset: read record", zap.Int("record", n), zap.String("name", name))
		out = append(out, Country{Name: name, Continent: continent, Geometry: mp})
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrapf(err, "dataset: read shapefile %s", path)
	}

	if skipped > 0 {
		zap.L().Debug("dataset: skipped shapefile records", zap.Int("skipped", skipped))
	}
	return out, nil
}

func attribute(r *shp.Reader, idx int) string {
	return strings.TrimSpace(strings.TrimRight(r.Attribute(idx), "\x00"))
}

// polygonToMultiPolygon groups the rings of a shapefile polygon into
// polygons. Clockwise rings start a new polygon and counter-clockwise rings
// are holes of the preceding one.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	var current *geom.Polygon
	flush := func() {
		if current == nil {
			return
		}
		if err := mp.Push(current); err != nil {
			zap.L().Debug("dataset: skipping malformed polygon", zap.Error(err))
		}
		current = nil
	}

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}
		if start < 0 || end > int32(len(p.Points)) || end-start < 3 {
			continue
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}
		ring := geom.NewLinearRingFlat(geom.XY, flat)

		if signedArea(flat) < 0 || current == nil {
			flush()
			current = geom.NewPolygon(geom.XY)
		}
		if err := current.Push(ring); err != nil {
			zap.L().Debug("dataset: skipping malformed ring", zap.Int32("part", i), zap.Error(err))
		}
	}
	flush()

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// signedArea is positive for counter-clockwise rings.
func signedArea(flat []float64) float64 {
	n := len(flat) / 2
	var sum float64
	for i := range n {
		j := (i + 1) % n
		sum += flat[2*i]*flat[2*j+1] - flat[2*j]*flat[2*i+1]
	}
	return sum / 2
}
