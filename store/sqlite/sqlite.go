/*
Package sqlite provides a SQLite-backed implementation of payroll.Store.

PURPOSE:
  An alternative to the flat file for users who want named columns and a
  versioned schema. Rows are handed back as encoded lines so the ledger
  decodes and filters them exactly as it does file content.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on pay_records
  - No DELETE statements on pay_records
  - Read order is insertion order (id ASC)

MIGRATION:
  Schema lives in migrations/*.sql, embedded into the binary and applied
  with golang-migrate on New().

CONCURRENCY:
  Uses sync.RWMutex for thread-safety; the HTTP server may call it from
  several goroutines. The pool is limited to one connection so ":memory:"
  databases stay a single database.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  ledger := payroll.NewLedger(store)

SEE ALSO:
  - payroll/store.go: Interface definition
  - store/file:       The default flat-file store
*/
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/payroll/payroll"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store implements payroll.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate applies the embedded migrations. The migrate instance is not
// closed: closing its database driver would close s.db as well.
func (s *Store) migrate() error {
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}
	defer src.Close()

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// =============================================================================
// RECORD STORE (payroll.Store interface)
// =============================================================================

// Append inserts one record.
func (s *Store) Append(ctx context.Context, r payroll.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO pay_records
		(from_date, to_date, name, hours, rate, tax_rate, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		r.FromDate,
		r.ToDate,
		r.Name,
		r.Hours,
		r.Rate,
		r.TaxRate,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

// ReadAll returns every record, encoded, in insertion order.
func (s *Store) ReadAll(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT from_date, to_date, name, hours, rate, tax_rate
		FROM pay_records
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	lines := []string{}
	for rows.Next() {
		var r payroll.Record
		if err := rows.Scan(&r.FromDate, &r.ToDate, &r.Name, &r.Hours, &r.Rate, &r.TaxRate); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		lines = append(lines, payroll.Encode(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return lines, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pay_records").Scan(&n)
	return n, err
}

// Import appends already-encoded lines, skipping any that do not decode.
// It runs in one transaction and returns how many lines were imported.
// Used to move an existing flat file into SQLite.
func (s *Store) Import(ctx context.Context, lines []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	imported := 0
	for _, line := range lines {
		r, err := payroll.Decode(line)
		if err != nil {
			continue
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO pay_records
			(from_date, to_date, name, hours, rate, tax_rate, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, r.FromDate, r.ToDate, r.Name, r.Hours, r.Rate, r.TaxRate, now)
		if err != nil {
			return 0, fmt.Errorf("failed to import record: %w", err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return imported, nil
}
