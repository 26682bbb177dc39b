package entity

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

func TestNewSQLStore_Validation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewSQLStore(db, testSchema(t), "mysql", "")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)

	_, err = NewSQLStore(db, testSchema(t), DriverSQLite, "entities; DROP TABLE x")
	assert.ErrorIs(t, err, ErrInvalidTable)

	store, err := NewSQLStore(db, testSchema(t), DriverPostgres, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTable, store.table)
	assert.Equal(t, "$1, $2, $3", store.placeholders(3))
}

func TestSQLStore_LoadSQLite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLStore(db, testSchema(t), DriverSQLite, "")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT bundle, data FROM entities WHERE entity_type = ? AND id = ?")).
		WithArgs("node", "2").
		WillReturnRows(sqlmock.NewRows([]string{"bundle", "data"}).
			AddRow("article", `{"title":[{"value":"Hello"}],"body":[{"value":"text"}]}`))

	e, err := store.Load(context.Background(), "node", "2")
	require.NoError(t, err)
	assert.Equal(t, "article", e.Bundle())

	title, err := e.Get("title")
	require.NoError(t, err)
	assert.Equal(t, "Hello", title.Property("value"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_LoadPostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLStore(db, testSchema(t), DriverPostgres, "content")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT bundle, data FROM content WHERE entity_type = $1 AND id = $2")).
		WithArgs("user", "1").
		WillReturnRows(sqlmock.NewRows([]string{"bundle", "data"}).AddRow("", `{"name":"admin"}`))

	e, err := store.Load(context.Background(), "user", "1")
	require.NoError(t, err)
	assert.Equal(t, "", e.Bundle())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_LoadErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLStore(db, testSchema(t), DriverPostgres, "")
	require.NoError(t, err)
	ctx := context.Background()

	// Unknown entity types never reach the database.
	_, err = store.Load(ctx, "widget", "1")
	assert.ErrorIs(t, err, typeddata.ErrUnknownEntityType)

	mock.ExpectQuery("SELECT bundle, data FROM entities").
		WithArgs("node", "404").
		WillReturnError(sql.ErrNoRows)
	_, err = store.Load(ctx, "node", "404")
	assert.ErrorIs(t, err, typeddata.ErrEntityNotFound)

	mock.ExpectQuery("SELECT bundle, data FROM entities").
		WithArgs("node", "2").
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: `relation "entities" does not exist`})
	_, err = store.Load(ctx, "node", "2")
	assert.ErrorIs(t, err, ErrStoreNotMigrated)

	mock.ExpectQuery("SELECT bundle, data FROM entities").
		WithArgs("node", "3").
		WillReturnRows(sqlmock.NewRows([]string{"bundle", "data"}).AddRow("article", `[1, 2]`))
	_, err = store.Load(ctx, "node", "3")
	assert.ErrorContains(t, err, "failed to decode")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLStore(db, testSchema(t), DriverPostgres, "")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO entities (entity_type, id, bundle, data)\nVALUES ($1, $2, $3, $4)")).
		WithArgs("node", "2", "article", `{"title":[{"value":"Hello"}],"body":[{"value":"text"}]}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Save(context.Background(), article("2", "Hello")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_SaveRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLStore(db, testSchema(t), DriverSQLite, "")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO entities").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO entities").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = store.Save(context.Background(), article("1", "One"), article("2", "Two"))
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectBegin()
	mock.ExpectRollback()
	err = store.Save(context.Background(), typeddata.EntityRecord{Type: "widget", ID: "1"})
	assert.ErrorIs(t, err, typeddata.ErrUnknownEntityType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "entities.db"))
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLStore(db, testSchema(t), DriverSQLite, "")
	require.NoError(t, err)

	_, err = store.Load(ctx, "node", "2")
	assert.ErrorIs(t, err, ErrStoreNotMigrated)

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx), "Migrate should be idempotent")

	require.NoError(t, store.Save(ctx, article("2", "Hello")))
	require.NoError(t, store.Save(ctx, article("2", "Updated")))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM entities").Scan(&count))
	assert.Equal(t, 1, count)

	e, err := store.Load(ctx, "node", "2")
	require.NoError(t, err)
	title, err := e.Get("title")
	require.NoError(t, err)
	assert.Equal(t, "Updated", title.Property("value"))

	var names []string
	for _, def := range e.FieldDefinitions() {
		names = append(names, def.Name())
	}
	assert.Equal(t, []string{"title", "body"}, names)

	_, err = store.Load(ctx, "node", "9")
	assert.ErrorIs(t, err, typeddata.ErrEntityNotFound)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
