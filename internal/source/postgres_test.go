package source

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var villageColumns = []string{"state", "district", "sub_district", "village"}

func newMockPostgresSource(t *testing.T, table string) (*PostgresSource, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return newPostgresFromQuerier(mock, table, nil), mock
}

func TestPostgresSource_Load(t *testing.T) {
	src, mock := newMockPostgresSource(t, "")

	mock.ExpectQuery(`SELECT (.+) FROM "villages" ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(villageColumns).
			AddRow("Bihar", "Patna", "Patna Sadar", "Danapur").
			AddRow("Bihar", "Patna", "Patna Sadar", "Phulwari").
			AddRow("Bihar", "Central", "First", "").
			AddRow("Assam", "Kamrup", "Rangia", "Baihata").
			AddRow("Bihar", "Patna", "Masaurhi", "Dhanaruaa"))

	res, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Failures)
	require.Len(t, res.States, 2)

	bihar := res.States[0]
	assert.Equal(t, []string{"Patna", "Central"}, bihar.DistrictNames())
	assert.Equal(t, []string{"Patna Sadar", "Masaurhi"}, bihar.Districts[0].SubDistrictNames())
	assert.Equal(t, []string{"Danapur", "Phulwari"}, bihar.Districts[0].SubDistricts[0].Villages)
	assert.Empty(t, bihar.Districts[1].SubDistricts[0].Villages)
	assert.Equal(t, "Assam", res.States[1].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_SchemaQualifiedTable(t *testing.T) {
	src, mock := newMockPostgresSource(t, "geo.villages")

	mock.ExpectQuery(`FROM "geo"\."villages" ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(villageColumns))

	res, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.States)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_BadRowFailsState(t *testing.T) {
	src, mock := newMockPostgresSource(t, "")

	mock.ExpectQuery(`FROM "villages"`).
		WillReturnRows(pgxmock.NewRows(villageColumns).
			AddRow("Goa", "North Goa", "", "Anjuna").
			AddRow("Bihar", "Patna", "Patna Sadar", "Danapur").
			AddRow("", "Nowhere", "Nothing", "None"))

	res, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.States, 1)
	assert.Equal(t, "Bihar", res.States[0].Name)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, "Goa", res.Failures[0].State)
	assert.Equal(t, "", res.Failures[1].State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_QueryError(t *testing.T) {
	src, mock := newMockPostgresSource(t, "")

	mock.ExpectQuery(`FROM "villages"`).WillReturnError(errors.New("relation does not exist"))

	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: query")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_RowError(t *testing.T) {
	src, mock := newMockPostgresSource(t, "")

	mock.ExpectQuery(`FROM "villages"`).
		WillReturnRows(pgxmock.NewRows(villageColumns).
			AddRow("Bihar", "Patna", "Patna Sadar", "Danapur").
			RowError(0, errors.New("connection reset")))

	_, err := src.Load(context.Background())
	assert.Error(t, err)
}

func TestPostgresSource_CloseCallsCloseFn(t *testing.T) {
	called := false
	src := newPostgresFromQuerier(nil, "", func() { called = true })
	src.Close()
	assert.True(t, called)

	// No close function is a no-op.
	newPostgresFromQuerier(nil, "", nil).Close()
}
