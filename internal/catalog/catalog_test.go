package catalog_test

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geoscope/internal/catalog"
	"github.com/sells-group/geoscope/internal/catalog/catalogtest"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Poland", "poland"},
		{"South America", "south_america"},
		{"Congo (Kinshasa)", "congo_kinshasa"},
		{"Bosnia and Herzegovina", "bosnia_and_herzegovina"},
		{"ÅLAND", "åland"},
		{"already_canonical", "already_canonical"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Canonicalize(tt.in))
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	for _, name := range []string{
		"Poland", "United States of America", "Congo (Brazzaville)",
		"  Two  Spaces ", "(()) ", "Côte d'Ivoire", "ÅLAND (FI)",
	} {
		once := catalog.Canonicalize(name)
		assert.Equal(t, once, catalog.Canonicalize(once), "canon(canon(%q))", name)
	}
}

func TestFileName_PrefixByLevel(t *testing.T) {
	assert.Equal(t, "continent_world.json", catalog.FileName(catalog.World, "world", ".json"))
	assert.Equal(t, "country_south_america.json", catalog.FileName(catalog.Continent, "South America", ".json"))
	assert.Equal(t, "country_poland.geojson", catalog.FileName(catalog.Country, "Poland", ".geojson"))
}

func TestLevel_Ordering(t *testing.T) {
	assert.Less(t, catalog.World, catalog.Continent)
	assert.Less(t, catalog.Continent, catalog.Country)
	assert.Equal(t, "continent", catalog.Continent.String())
}

func TestNew_MissingDir(t *testing.T) {
	_, err := catalog.New(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, catalog.IsNotFound(err))
}

func TestNew_MissingTablesAreNotFatal(t *testing.T) {
	dir := t.TempDir()
	c, err := catalog.New(dir)
	require.NoError(t, err)

	_, ok := c.CountryInfo("Poland")
	assert.False(t, ok)
	_, ok = c.RandomFact("Poland")
	assert.False(t, ok)
}

func TestNew_MalformedTableIsEmpty(t *testing.T) {
	dir := t.TempDir()
	catalogtest.WriteFile(t, dir, catalog.CountryInfoFile, `{"poland": {"name": 12`)
	c, err := catalog.New(dir)
	require.NoError(t, err)

	_, ok := c.CountryInfo("poland")
	assert.False(t, ok)
}

func TestLoadList(t *testing.T) {
	c, err := catalog.New(catalogtest.Write(t))
	require.NoError(t, err)

	continents, err := c.LoadList(catalog.World, "world")
	require.NoError(t, err)
	assert.Equal(t, catalogtest.Continents, continents)

	countries, err := c.LoadList(catalog.Continent, "Europe")
	require.NoError(t, err)
	assert.Equal(t, []string{"Germany", "Poland"}, countries)

	cached, ok := c.CachedList(catalog.Continent, "europe")
	require.True(t, ok)
	assert.Equal(t, countries, cached)

	_, ok = c.CachedList(catalog.Continent, "Asia")
	assert.False(t, ok)
}

func TestLoadList_OverwritesCacheEntry(t *testing.T) {
	dir := catalogtest.Write(t)
	c, err := catalog.New(dir)
	require.NoError(t, err)

	_, err = c.LoadList(catalog.Continent, "Asia")
	require.NoError(t, err)

	catalogtest.WriteJSON(t, dir, "country_asia.json", []string{"Mongolia"})
	got, err := c.LoadList(catalog.Continent, "Asia")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mongolia"}, got)

	cached, _ := c.CachedList(catalog.Continent, "Asia")
	assert.Equal(t, []string{"Mongolia"}, cached)
}

func TestLoadList_NullIsParseError(t *testing.T) {
	dir := catalogtest.Write(t)
	catalogtest.WriteFile(t, dir, "country_nulllist.json", "null")
	catalogtest.WriteFile(t, dir, "country_emptylist.json", "[]")
	c, err := catalog.New(dir)
	require.NoError(t, err)

	_, err = c.LoadList(catalog.Continent, "nulllist")
	require.Error(t, err)
	assert.True(t, catalog.IsParse(err))
	_, ok := c.CachedList(catalog.Continent, "nulllist")
	assert.False(t, ok, "rejected list is not cached")

	empty, err := c.LoadList(catalog.Continent, "emptylist")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLoadList_Errors(t *testing.T) {
	dir := catalogtest.Write(t)
	catalogtest.WriteFile(t, dir, "country_atlantis.json", `["Atlantis",`)
	c, err := catalog.New(dir)
	require.NoError(t, err)

	_, err = c.LoadList(catalog.Continent, "Oceania")
	require.Error(t, err)
	assert.True(t, catalog.IsNotFound(err))
	assert.False(t, catalog.IsParse(err))

	_, err = c.LoadList(catalog.Continent, "Atlantis")
	require.Error(t, err)
	assert.True(t, catalog.IsParse(err))

	_, ok := c.CachedList(catalog.Continent, "Atlantis")
	assert.False(t, ok, "failed loads must not populate the cache")
}

func TestLoadGeometrySource(t *testing.T) {
	dir := catalogtest.Write(t)
	catalogtest.WriteFile(t, dir, "country_broken.geojson", `{"type":"FeatureCollection","features":[{`)
	c, err := catalog.New(dir)
	require.NoError(t, err)

	fc, err := c.LoadGeometrySource(catalog.World, "world")
	require.NoError(t, err)
	assert.Len(t, fc.Features, 5)
	assert.Equal(t, "Egypt", fc.Features[0].Properties["ADMIN"])

	fc, err = c.LoadGeometrySource(catalog.Country, "Poland")
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	_, err = c.LoadGeometrySource(catalog.Country, "Atlantis")
	assert.True(t, catalog.IsNotFound(err))

	_, err = c.LoadGeometrySource(catalog.Country, "Broken")
	assert.True(t, catalog.IsParse(err))
}

func TestCountryInfo(t *testing.T) {
	c, err := catalog.New(catalogtest.Write(t))
	require.NoError(t, err)

	info, ok := c.CountryInfo("Poland")
	require.True(t, ok)
	assert.Equal(t, "Warsaw", info.Capital)
	assert.Equal(t, uint64(36620000), info.Population)
	assert.InDelta(t, 312696.0, info.Area, 0.001)
	assert.Equal(t, "PLN", info.Currency)

	_, ok = c.CountryInfo("Japan")
	assert.False(t, ok)
}

func TestRandomFact(t *testing.T) {
	dir := catalogtest.Write(t)
	catalogtest.WriteJSON(t, dir, catalog.FunFactsFile, map[string][]string{
		"poland": {"a", "b", "c"},
		"japan":  {},
	})

	newCatalog := func() *catalog.Catalog {
		c, err := catalog.New(dir, catalog.WithRand(rand.New(rand.NewPCG(7, 7))))
		require.NoError(t, err)
		return c
	}

	a, b := newCatalog(), newCatalog()
	seen := make(map[string]bool)
	for range 50 {
		fa, ok := a.RandomFact("Poland")
		require.True(t, ok)
		fb, _ := b.RandomFact("Poland")
		assert.Equal(t, fa, fb, "same seed must draw the same sequence")
		seen[fa] = true
	}
	assert.Len(t, seen, 3)

	_, ok := a.RandomFact("Japan")
	assert.False(t, ok, "empty list yields no fact")
	_, ok = a.RandomFact("Atlantis")
	assert.False(t, ok)
}

func TestContinentMembership(t *testing.T) {
	dir := catalogtest.Write(t)
	catalogtest.WriteJSON(t, dir, "continent_world.json", []string{"Africa", "Asia", "Europe", "Antarctica"})
	c, err := catalog.New(dir)
	require.NoError(t, err)

	m := c.ContinentMembership()
	require.Len(t, m, 3, "continents without a list are omitted")
	assert.Contains(t, m["Asia"], "Japan")
	assert.Contains(t, m["Europe"], "Poland")
	assert.NotContains(t, m, "Antarctica")
}

func TestContinentMembership_PrefersCachedLists(t *testing.T) {
	dir := catalogtest.Write(t)
	c, err := catalog.New(dir)
	require.NoError(t, err)

	_, err = c.LoadList(catalog.Continent, "Asia")
	require.NoError(t, err)
	catalogtest.WriteJSON(t, dir, "country_asia.json", []string{"Mongolia"})

	m := c.ContinentMembership()
	assert.Contains(t, m["Asia"], "Japan", "cached list wins over the file")
	assert.NotContains(t, m["Asia"], "Mongolia")

	_, ok := c.CachedList(catalog.Continent, "Europe")
	assert.True(t, ok, "lists read on a cache miss are cached")
}

func TestContinentMembership_NoWorldList(t *testing.T) {
	c, err := catalog.New(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, c.ContinentMembership())
}
