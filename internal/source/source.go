// Package source loads per-state directory documents from disk or a database
// and builds the in-memory catalog from them.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geodir/internal/catalog"
)

// Source produces validated states. A state that fails to decode or validate
// is reported in Result.Failures and left out of Result.States; only problems
// that prevent reading the source as a whole are returned as errors.
type Source interface {
	Load(ctx context.Context) (*Result, error)
}

// Result is the outcome of a Source load.
type Result struct {
	States   []catalog.State
	Failures []LoadFailure
}

// LoadFailure records a single state that could not be loaded.
type LoadFailure struct {
	State string
	Err   error
}

func (f LoadFailure) Error() string {
	return fmt.Sprintf("source: load state %q: %v", f.State, f.Err)
}

func (f LoadFailure) Unwrap() error {
	return f.Err
}

// Build loads src and constructs the catalog. Per-state failures and duplicate
// state names are logged and skipped; they are also returned so callers such as
// the validate command can report them.
func Build(ctx context.Context, src Source) (*catalog.Catalog, []LoadFailure, error) {
	log := zap.L().With(zap.String("component", "source"))
	start := time.Now()

	res, err := src.Load(ctx)
	if err != nil {
		return nil, nil, eris.Wrap(err, "source: load")
	}

	for _, f := range res.Failures {
		log.Warn("skipping state", zap.String("state", f.State), zap.Error(f.Err))
	}

	cat, dups := catalog.New(res.States)
	for _, name := range dups {
		log.Warn("duplicate state ignored", zap.String("state", name))
	}

	stats := cat.Stats()
	log.Info("catalog loaded",
		zap.Int("states", stats.States),
		zap.Int("districts", stats.Districts),
		zap.Int("sub_districts", stats.SubDistricts),
		zap.Int("villages", stats.Villages),
		zap.Int("failed_states", len(res.Failures)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return cat, res.Failures, nil
}
