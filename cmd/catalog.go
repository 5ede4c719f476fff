package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geodir/internal/catalog"
	"github.com/sells-group/geodir/internal/config"
	"github.com/sells-group/geodir/internal/source"
)

// openSource returns the configured catalog source and a function releasing
// any connection it holds.
func openSource(ctx context.Context, c config.CatalogConfig) (source.Source, func(), error) {
	switch c.Source {
	case config.SourceDir:
		return source.NewDir(c.Dir, c.Concurrency), func() {}, nil
	case config.SourceSQLite:
		src, err := source.NewSQLite(c.DatabaseURL, c.Table)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { _ = src.Close() }, nil
	case config.SourcePostgres:
		src, err := source.NewPostgres(ctx, c.DatabaseURL, c.Table)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	default:
		return nil, nil, eris.Errorf("unknown catalog source %q", c.Source)
	}
}

// loadCatalog validates the config and builds the catalog from the configured
// source. Database connections are released once the catalog is in memory.
func loadCatalog(ctx context.Context) (*catalog.Catalog, []source.LoadFailure, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	zap.L().Info("loading catalog", zap.String("source", cfg.Catalog.Source))

	src, closeFn, err := openSource(ctx, cfg.Catalog)
	if err != nil {
		return nil, nil, eris.Wrap(err, "open catalog source")
	}
	defer closeFn()

	return source.Build(ctx, src)
}
