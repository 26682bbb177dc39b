package entity

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"

	"github.com/conduit-lang/tdexplorer/pkg/typeddata"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// DefaultTable is the table entities are stored in.
const DefaultTable = "entities"

var (
	// ErrUnsupportedDriver is returned for drivers other than sqlite3 and pgx
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrInvalidTable is returned for table names that are not plain identifiers
	ErrInvalidTable = errors.New("invalid table name")

	// ErrStoreNotMigrated is returned when the entity table does not exist yet
	ErrStoreNotMigrated = errors.New("entity table does not exist; run the seed command first")
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLStore loads entities from a relational table. Each row holds one
// entity; field values are stored as a JSON document that keeps field and
// property order.
type SQLStore struct {
	db     *sql.DB
	schema Schema
	driver string
	table  string
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// NewSQLStore creates a store over db. driver selects the placeholder style.
func NewSQLStore(db *sql.DB, schema Schema, driver, table string) (*SQLStore, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	if table == "" {
		table = DefaultTable
	}
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	return &SQLStore{db: db, schema: schema, driver: driver, table: table}, nil
}

// placeholder returns the n-th (1-based) bind parameter.
func (s *SQLStore) placeholder(n int) string {
	if s.driver == DriverPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (s *SQLStore) placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = s.placeholder(i + 1)
	}
	return strings.Join(ps, ", ")
}

// Migrate creates the entity table when it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	entity_type VARCHAR(128) NOT NULL,
	id VARCHAR(128) NOT NULL,
	bundle VARCHAR(128) NOT NULL DEFAULT '',
	data TEXT NOT NULL,
	PRIMARY KEY (entity_type, id)
)`, s.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create %s table: %w", s.table, err)
	}
	return nil
}

// Load returns the entity stored under entityType and id.
func (s *SQLStore) Load(ctx context.Context, entityType, id string) (typeddata.Entity, error) {
	if !s.schema.HasEntityType(entityType) {
		return nil, typeddata.UnknownEntityType(entityType)
	}

	query := fmt.Sprintf("SELECT bundle, data FROM %s WHERE entity_type = %s AND id = %s",
		s.table, s.placeholder(1), s.placeholder(2))

	var bundle, data string
	err := s.db.QueryRowContext(ctx, query, entityType, id).Scan(&bundle, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, typeddata.EntityNotFound(entityType, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %q: %w", entityType, id, translateError(err))
	}

	values := typeddata.NewMap()
	if err := json.Unmarshal([]byte(data), values); err != nil {
		return nil, fmt.Errorf("failed to decode %s %q: %w", entityType, id, err)
	}
	return Build(s.schema, typeddata.EntityRecord{Type: entityType, ID: id, Bundle: bundle, Values: values})
}

// Save inserts or replaces records in one transaction.
func (s *SQLStore) Save(ctx context.Context, records ...typeddata.EntityRecord) error {
	query := fmt.Sprintf(`
INSERT INTO %s (entity_type, id, bundle, data)
VALUES (%s)
ON CONFLICT (entity_type, id) DO UPDATE SET bundle = excluded.bundle, data = excluded.data`,
		s.table, s.placeholders(4))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		if _, err := s.schema.FieldDefinitions(rec.Type, rec.Bundle); err != nil {
			return fmt.Errorf("failed to save %s %q: %w", rec.Type, rec.ID, err)
		}
		values := rec.Values
		if values == nil {
			values = typeddata.NewMap()
		}
		data, err := json.Marshal(values)
		if err != nil {
			return fmt.Errorf("failed to encode %s %q: %w", rec.Type, rec.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, rec.Type, rec.ID, rec.Bundle, string(data)); err != nil {
			return fmt.Errorf("failed to save %s %q: %w", rec.Type, rec.ID, translateError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// translateError maps a missing table to ErrStoreNotMigrated for both drivers.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
		return fmt.Errorf("%w: %s", ErrStoreNotMigrated, pgErr.Message)
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrError &&
		strings.Contains(liteErr.Error(), "no such table") {
		return fmt.Errorf("%w: %s", ErrStoreNotMigrated, liteErr.Error())
	}
	return err
}
