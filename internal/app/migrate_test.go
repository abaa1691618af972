package app

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdellahHatouchi/property-management/internal/app/migrations"
)

type recordingDB struct {
	applied   map[string]bool
	execs     []string
	committed []string
	failOn    string
}

type recordingRow struct {
	found bool
}

func (r recordingRow) Scan(dest ...any) error {
	if !r.found {
		return pgx.ErrNoRows
	}
	*(dest[0].(*int)) = 1
	return nil
}

func (d *recordingDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	d.execs = append(d.execs, sql)
	return pgconn.CommandTag("CREATE TABLE"), nil
}

func (d *recordingDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (d *recordingDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	return recordingRow{found: d.applied[args[0].(string)]}
}

func (d *recordingDB) Begin(context.Context) (pgx.Tx, error) {
	return &recordingTx{db: d}, nil
}

type recordingTx struct {
	pgx.Tx
	db      *recordingDB
	pending []string
	file    string
}

func (t *recordingTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if len(args) == 1 {
		t.file = args[0].(string)
	}
	if t.db.failOn != "" && sql == t.db.failOn {
		return nil, errors.New("syntax error")
	}
	t.pending = append(t.pending, sql)
	return pgconn.CommandTag("INSERT 0 1"), nil
}

func (t *recordingTx) Commit(context.Context) error {
	t.db.execs = append(t.db.execs, t.pending...)
	t.db.committed = append(t.db.committed, t.file)
	t.db.applied[t.file] = true
	return nil
}

func (t *recordingTx) Rollback(context.Context) error { return nil }

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id INT);\n", ExtractUpMigration(content))

	assert.Equal(t, "CREATE TABLE b (id INT);", ExtractUpMigration("CREATE TABLE b (id INT);"))
	assert.Equal(t, "\nCREATE TABLE c (id INT);", ExtractUpMigration("-- +migrate Up\nCREATE TABLE c (id INT);"))
}

func TestApplyMigrationsInOrderOnce(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_rentals.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE rentals ();\n-- +migrate Down\nDROP TABLE rentals;")},
		"0001_users.sql":   {Data: []byte("-- +migrate Up\nCREATE TABLE users ();\n-- +migrate Down\nDROP TABLE users;")},
		"README.md":        {Data: []byte("not sql")},
	}
	db := &recordingDB{applied: map[string]bool{}}

	require.NoError(t, ApplyMigrations(context.Background(), db, fsys))
	assert.Equal(t, []string{"0001_users.sql", "0002_rentals.sql"}, db.committed)

	// Second run is a no-op apart from the bookkeeping table.
	require.NoError(t, ApplyMigrations(context.Background(), db, fsys))
	assert.Len(t, db.committed, 2)
}

func TestApplyMigrationsStopsOnFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"0001_users.sql": {Data: []byte("-- +migrate Up\nBROKEN;\n-- +migrate Down\n")},
		"0002_more.sql":  {Data: []byte("-- +migrate Up\nCREATE TABLE more ();\n")},
	}
	db := &recordingDB{applied: map[string]bool{}, failOn: "\nBROKEN;\n"}

	err := ApplyMigrations(context.Background(), db, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0001_users.sql")
	assert.Empty(t, db.committed)
}

func TestEmbeddedMigrationsParse(t *testing.T) {
	content, err := migrations.FS.ReadFile("0001_init.sql")
	require.NoError(t, err)

	up := ExtractUpMigration(string(content))
	for _, table := range []string{"users", "businesses", "properties", "units", "tenants", "rentals", "verification_tokens"} {
		assert.Contains(t, up, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.NotContains(t, up, "DROP TABLE")
}
