package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/geoscope/internal/catalog"
)

// Summary reports what Build wrote.
type Summary struct {
	Continents int
	Countries  int
	Files      int
}

// Build writes the explorer layout for countries into dir:
//
//	continent_world.json / .geojson     continents and every country outline
//	country_<continent>.json / .geojson member names and outlines
//	country_<country>.geojson           one outline
//
// Lists are sorted by name. A country appearing twice keeps its first record.
func Build(dir string, countries []Country) (Summary, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Summary{}, eris.Wrapf(err, "dataset: create %s", dir)
	}
	log := zap.L().With(zap.String("component", "dataset"))

	byContinent := make(map[string][]Country)
	seen := make(map[string]bool)
	var all []Country
	for _, c := range countries {
		if seen[c.Name] {
			log.Debug("duplicate country record", zap.String("name", c.Name))
			continue
		}
		seen[c.Name] = true
		byContinent[c.Continent] = append(byContinent[c.Continent], c)
		all = append(all, c)
	}
	sortByName(all)

	continents := make([]string, 0, len(byContinent))
	for name := range byContinent {
		continents = append(continents, name)
	}
	slices.Sort(continents)

	w := &writer{dir: dir}
	w.writeJSON(catalog.FileName(catalog.World, catalog.WorldKey, ".json"), continents)
	w.writeCollection(catalog.FileName(catalog.World, catalog.WorldKey, ".geojson"), all)

	for _, continent := range continents {
		members := byContinent[continent]
		sortByName(members)
		w.writeJSON(catalog.FileName(catalog.Continent, continent, ".json"), names(members))
		w.writeCollection(catalog.FileName(catalog.Continent, continent, ".geojson"), members)
	}
	for _, c := range all {
		w.writeCollection(catalog.FileName(catalog.Country, c.Name, ".geojson"), []Country{c})
	}
	if w.err != nil {
		return Summary{}, w.err
	}

	s := Summary{Continents: len(continents), Countries: len(all), Files: w.files}
	log.Info("dataset written",
		zap.String("dir", dir),
		zap.Int("continents", s.Continents),
		zap.Int("countries", s.Countries),
		zap.Int("files", s.Files),
	)
	return s, nil
}

// writer stops at the first failed write.
type writer struct {
	dir   string
	files int
	err   error
}

func (w *writer) writeJSON(name string, v any) {
	if w.err != nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		w.err = eris.Wrapf(err, "dataset: encode %s", name)
		return
	}
	if err := os.WriteFile(filepath.Join(w.dir, name), data, 0o644); err != nil {
		w.err = eris.Wrapf(err, "dataset: write %s", name)
		return
	}
	w.files++
}

func (w *writer) writeCollection(name string, countries []Country) {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(countries))}
	for _, c := range countries {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: c.Geometry,
			Properties: map[string]any{
				FieldName:      c.Name,
				FieldContinent: c.Continent,
			},
		})
	}
	w.writeJSON(name, fc)
}

func sortByName(cs []Country) {
	slices.SortFunc(cs, func(a, b Country) int { return strings.Compare(a.Name, b.Name) })
}

func names(cs []Country) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
