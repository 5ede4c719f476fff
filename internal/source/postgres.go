package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Querier is the subset of pgxpool.Pool used by PostgresSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads the directory from a flat Postgres table with the same
// columns as SQLiteSource. The table may be schema-qualified ("geo.villages").
type PostgresSource struct {
	pool    Querier
	table   string
	closeFn func()
}

// NewPostgres connects to Postgres and verifies the connection.
func NewPostgres(ctx context.Context, connString, table string) (*PostgresSource, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	// The catalog is read once at startup.
	pgxCfg.MaxConns = 2
	pgxCfg.MaxConnIdleTime = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return newPostgresFromQuerier(pool, table, pool.Close), nil
}

func newPostgresFromQuerier(q Querier, table string, closeFn func()) *PostgresSource {
	if table == "" {
		table = "villages"
	}
	return &PostgresSource{pool: q, table: table, closeFn: closeFn}
}

// Load reads every row ordered by id.
func (s *PostgresSource) Load(ctx context.Context) (*Result, error) {
	ident := pgx.Identifier(strings.Split(s.table, ".")).Sanitize()
	q := fmt.Sprintf(
		`SELECT COALESCE(state, ''), COALESCE(district, ''), COALESCE(sub_district, ''), COALESCE(village, '') FROM %s ORDER BY id`,
		ident,
	)
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: query %s", s.table)
	}
	defer rows.Close()

	asm := newRowAssembler()
	for rows.Next() {
		var state, district, subDistrict, village string
		if err := rows.Scan(&state, &district, &subDistrict, &village); err != nil {
			return nil, eris.Wrap(err, "postgres: scan row")
		}
		asm.add(state, district, subDistrict, village)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate rows")
	}
	return asm.result(), nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}
