package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/geodir/internal/catalog"
)

const defaultConcurrency = 8

// DirSource reads one document per state from a directory. The state name is
// the file name without its extension; files load in lexical name order.
type DirSource struct {
	Dir         string
	Concurrency int
}

// NewDir returns a DirSource for dir. A non-positive concurrency uses the default.
func NewDir(dir string, concurrency int) *DirSource {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &DirSource{Dir: dir, Concurrency: concurrency}
}

type stateFile struct {
	name   string
	path   string
	format Format
}

// Load parses every state document under Dir in parallel and returns once all
// of them are done.
func (s *DirSource) Load(ctx context.Context) (*Result, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, eris.Wrapf(err, "source: read dir %s", s.Dir)
	}

	var files []stateFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		var format Format
		switch ext {
		case ".json":
			format = FormatJSON
		case ".yaml", ".yml":
			format = FormatYAML
		default:
			continue
		}
		files = append(files, stateFile{
			name:   strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			path:   filepath.Join(s.Dir, e.Name()),
			format: format,
		})
	}

	states := make([]catalog.State, len(files))
	errs := make([]error, len(files))

	limit := s.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(f.path)
			if err != nil {
				errs[i] = eris.Wrapf(err, "source: read %s", f.path)
				return nil
			}
			st, err := ParseDocument(f.name, data, f.format)
			if err != nil {
				errs[i] = err
				return nil
			}
			states[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "source: load dir")
	}

	res := &Result{States: make([]catalog.State, 0, len(files))}
	for i, f := range files {
		if errs[i] != nil {
			res.Failures = append(res.Failures, LoadFailure{State: f.name, Err: errs[i]})
			continue
		}
		res.States = append(res.States, states[i])
	}
	return res, nil
}
