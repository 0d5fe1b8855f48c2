// Package catalogtest writes small reference datasets for tests.
package catalogtest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/geoscope/internal/catalog"
)

// Continents of the fixture world, in list order.
var Continents = []string{"Africa", "Asia", "Europe"}

// Members lists the countries of each fixture continent.
var Members = map[string][]string{
	"Africa": {"Egypt"},
	"Asia":   {"China", "Japan"},
	"Europe": {"Germany", "Poland"},
}

// squares places each fixture country as an axis-aligned square
// (minx, miny, size).
var squares = map[string][3]float64{
	"Egypt":   {25, 22, 10},
	"China":   {75, 20, 40},
	"Japan":   {130, 30, 8},
	"Germany": {6, 47, 8},
	"Poland":  {14, 49, 10},
}

// Square returns a closed square ring at (x, y) with side n.
func Square(x, y, n float64) []geom.Coord {
	return []geom.Coord{{x, y}, {x + n, y}, {x + n, y + n}, {x, y + n}, {x, y}}
}

// CountryFeature returns a feature for a fixture country. Japan carries a
// small offshore island that the fragment filter drops.
func CountryFeature(name string) *geojson.Feature {
	sq := squares[name]
	var g geom.T
	if name == "Japan" {
		g = geom.NewMultiPolygon(geom.XY).MustSetCoords([][][]geom.Coord{
			{Square(sq[0], sq[1], sq[2])},
			{Square(sq[0]+10, sq[1]+10, 1)},
		})
	} else {
		g = geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{Square(sq[0], sq[1], sq[2])})
	}
	return &geojson.Feature{
		Geometry:   g,
		Properties: map[string]any{"ADMIN": name},
	}
}

// Collection builds a feature collection of the named fixture countries.
func Collection(names ...string) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}
	for _, name := range names {
		fc.Features = append(fc.Features, CountryFeature(name))
	}
	return fc
}

// Write lays out a complete fixture dataset under a fresh temp dir and
// returns the directory.
func Write(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	WriteJSON(t, dir, "continent_world.json", Continents)

	var all []string
	for _, continent := range Continents {
		countries := Members[continent]
		all = append(all, countries...)
		key := catalog.Canonicalize(continent)
		WriteJSON(t, dir, "country_"+key+".json", countries)
		WriteJSON(t, dir, "country_"+key+".geojson", Collection(countries...))
		for _, country := range countries {
			WriteJSON(t, dir, "country_"+catalog.Canonicalize(country)+".geojson", Collection(country))
		}
	}
	WriteJSON(t, dir, "continent_world.geojson", Collection(all...))

	WriteJSON(t, dir, "country_info.json", map[string]any{
		"poland": map[string]any{
			"name": "Poland", "capital": "Warsaw", "area": 312696.0,
			"population": 36620000, "currency": "PLN",
		},
		"china": map[string]any{
			"name": "China", "capital": "Beijing", "area": 9596961.0,
			"population": 1411750000, "currency": "CNY",
		},
	})
	WriteJSON(t, dir, "funfacts.json", map[string][]string{
		"poland": {"Poland has a desert."},
		"japan":  {},
	})

	return dir
}

// WriteJSON marshals v into dir/name.
func WriteJSON(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	WriteFile(t, dir, name, string(data))
}

// WriteFile writes raw content into dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// GDPCSV is a World Bank style wide table: five metadata lines, then one row
// per country with yearly values from 1960 in column 4.
const GDPCSV = `"Data Source","World Development Indicators",
"Last Updated Date","2024-06-28",
"",
"Country Name","Country Code","Indicator Name","Indicator Code","1960","1961","1962"
"","","","",""
"Poland","POL","GDP (current US$)","NY.GDP.MKTP.CD","1000000","","3400000000"
"China","CHN","GDP (current US$)","NY.GDP.MKTP.CD","59716467625","50056868958","2500000000000"
"United States of America","USA","GDP (current US$)","NY.GDP.MKTP.CD","543300000000","563300000000","n/a"
`
