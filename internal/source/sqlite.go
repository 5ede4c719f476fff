package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteSource reads the directory from a flat table in a SQLite database:
//
//	CREATE TABLE villages (id INTEGER PRIMARY KEY, state TEXT, district TEXT, sub_district TEXT, village TEXT)
type SQLiteSource struct {
	db    *sql.DB
	table string
}

// NewSQLite opens the SQLite database at dsn for reading.
func NewSQLite(dsn, table string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// One connection so the pragma below covers every query.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA query_only=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	if table == "" {
		table = "villages"
	}
	return &SQLiteSource{db: db, table: table}, nil
}

// Load reads every row ordered by id.
func (s *SQLiteSource) Load(ctx context.Context) (*Result, error) {
	q := fmt.Sprintf(
		`SELECT COALESCE(state, ''), COALESCE(district, ''), COALESCE(sub_district, ''), COALESCE(village, '') FROM %s ORDER BY id`,
		quoteIdent(s.table),
	)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query %s", s.table)
	}
	defer rows.Close()

	asm := newRowAssembler()
	for rows.Next() {
		var state, district, subDistrict, village string
		if err := rows.Scan(&state, &district, &subDistrict, &village); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan row")
		}
		asm.add(state, district, subDistrict, village)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate rows")
	}
	return asm.result(), nil
}

func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
