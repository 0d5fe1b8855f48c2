// Package catalog resolves symbolic keys to the list, geometry and metadata
// files of the on-disk reference dataset.
package catalog

import (
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Level is a tier of the geographic hierarchy.
type Level int

// Hierarchy levels, ordered from broadest to narrowest.
const (
	World Level = iota
	Continent
	Country
)

func (l Level) String() string {
	switch l {
	case World:
		return "world"
	case Continent:
		return "continent"
	case Country:
		return "country"
	default:
		return "unknown"
	}
}

// WorldKey is the symbolic key of the single world-level list.
const WorldKey = "world"

// Well-known files under the data directory.
const (
	CountryInfoFile = "country_info.json"
	FunFactsFile    = "funfacts.json"
)

// CountryInfo is the metadata record for one country.
type CountryInfo struct {
	Name       string  `json:"name"`
	Capital    string  `json:"capital"`
	Area       float64 `json:"area"`
	Population uint64  `json:"population"`
	Currency   string  `json:"currency"`
}

// Canonicalize derives the symbolic key of a display name: lowercase,
// spaces become underscores, parentheses are dropped.
func Canonicalize(name string) string {
	key := cases.Lower(language.Und).String(name)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "(", "")
	return strings.ReplaceAll(key, ")", "")
}

// filePrefix returns the filename prefix for a level. Only the world list
// uses "continent"; continent and country lookups share "country".
func filePrefix(level Level) string {
	if level == World {
		return "continent"
	}
	return "country"
}

// FileName returns the file holding the data for (level, key) with the given
// extension (".json" or ".geojson").
func FileName(level Level, key, ext string) string {
	return filePrefix(level) + "_" + Canonicalize(key) + ext
}

type listKey struct {
	level Level
	key   string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRand sets the random source used for trivia draws.
func WithRand(r *rand.Rand) Option {
	return func(c *Catalog) { c.rng = r }
}

// WithSeed seeds the trivia random source. Zero seeds from the clock.
func WithSeed(seed uint64) Option {
	return func(c *Catalog) {
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// Catalog reads and memoizes the reference dataset under a base directory.
// It is not safe for concurrent use.
type Catalog struct {
	dir       string
	lists     map[listKey][]string
	countries map[string]CountryInfo
	facts     map[string][]string
	rng       *rand.Rand
	log       *zap.Logger
}

// New opens the dataset at dir. The country metadata and trivia tables are
// read once here; a missing or malformed table leaves it empty.
func New(dir string, opts ...Option) (*Catalog, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, eris.Wrapf(readError(dir, err), "catalog: open data dir")
	}
	if !st.IsDir() {
		return nil, eris.Errorf("catalog: %s is not a directory", dir)
	}

	c := &Catalog{
		dir:   dir,
		lists: make(map[listKey][]string),
		log:   zap.L().With(zap.String("component", "catalog")),
	}
	WithSeed(0)(c)
	for _, opt := range opts {
		opt(c)
	}

	if err := c.readJSON(CountryInfoFile, &c.countries); err != nil {
		c.log.Warn("country metadata unavailable", zap.Error(err))
		c.countries = nil
	}
	if err := c.readJSON(FunFactsFile, &c.facts); err != nil {
		c.log.Warn("trivia unavailable", zap.Error(err))
		c.facts = nil
	}

	c.log.Debug("catalog opened",
		zap.String("dir", dir),
		zap.Int("countries", len(c.countries)),
		zap.Int("facts", len(c.facts)),
	)
	return c, nil
}

// Dir returns the base data directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// LoadList reads the child names of (level, key) and records them in the
// list cache, replacing any earlier entry.
func (c *Catalog) LoadList(level Level, key string) ([]string, error) {
	name := FileName(level, key, ".json")
	var list []string
	if err := c.readJSON(name, &list); err != nil {
		return nil, eris.Wrapf(err, "catalog: load %s list %q", level, key)
	}
	if list == nil {
		err := NewDataError(KindParse, filepath.Join(c.dir, name), eris.New("expected a JSON array"))
		return nil, eris.Wrapf(err, "catalog: load %s list %q", level, key)
	}
	c.lists[listKey{level, Canonicalize(key)}] = list
	return list, nil
}

// CachedList returns the last list loaded for (level, key) without touching
// the filesystem.
func (c *Catalog) CachedList(level Level, key string) ([]string, bool) {
	list, ok := c.lists[listKey{level, Canonicalize(key)}]
	return list, ok
}

// LoadGeometrySource reads the feature collection for (level, key).
func (c *Catalog) LoadGeometrySource(level Level, key string) (*geojson.FeatureCollection, error) {
	var fc geojson.FeatureCollection
	if err := c.readJSON(FileName(level, key, ".geojson"), &fc); err != nil {
		return nil, eris.Wrapf(err, "catalog: load %s geometry %q", level, key)
	}
	return &fc, nil
}

// CountryInfo looks up the metadata of a country by display name or key.
func (c *Catalog) CountryInfo(name string) (CountryInfo, bool) {
	info, ok := c.countries[Canonicalize(name)]
	return info, ok
}

// RandomFact draws one trivia entry for a country uniformly at random.
func (c *Catalog) RandomFact(name string) (string, bool) {
	facts := c.facts[Canonicalize(name)]
	if len(facts) == 0 {
		return "", false
	}
	return facts[c.rng.IntN(len(facts))], true
}

// ContinentMembership maps each continent of the world list to the set of
// its country names. Lists already cached are reused and the rest are read
// from disk. Continents whose list cannot be read are left out.
func (c *Catalog) ContinentMembership() map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{})

	continents, err := c.list(World, WorldKey)
	if err != nil {
		c.log.Debug("membership: world list unavailable", zap.Error(err))
		return out
	}

	for _, continent := range continents {
		countries, err := c.list(Continent, continent)
		if err != nil {
			c.log.Debug("membership: skipping continent",
				zap.String("continent", continent),
				zap.Error(err),
			)
			continue
		}
		set := make(map[string]struct{}, len(countries))
		for _, name := range countries {
			set[name] = struct{}{}
		}
		out[continent] = set
	}
	return out
}

func (c *Catalog) list(level Level, key string) ([]string, error) {
	if list, ok := c.CachedList(level, key); ok {
		return list, nil
	}
	return c.LoadList(level, key)
}

func (c *Catalog) readJSON(name string, v any) error {
	path := filepath.Join(c.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return readError(path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return NewDataError(KindParse, path, err)
	}
	return nil
}
