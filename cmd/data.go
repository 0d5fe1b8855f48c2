package main

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geoscope/internal/catalog"
	"github.com/sells-group/geoscope/internal/gdp"
)

func openCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.New(cfg.Data.Dir, catalog.WithSeed(cfg.Data.Seed))
	if err != nil {
		return nil, eris.Wrap(err, "open dataset")
	}
	return cat, nil
}

// loadGDP reads the GDP table. A missing or unreadable table is not fatal:
// GDP features degrade to unavailable.
func loadGDP() *gdp.Index {
	path := cfg.Data.GDPFile()
	idx, err := gdp.Load(path)
	if err != nil {
		zap.L().Warn("gdp table unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	return idx
}
