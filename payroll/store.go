/*
store.go - Ports between the pipeline and the outside world

KEY INTERFACES:
  Store:    Append-only persistence of encoded records
  Notifier: Optional side channel told about every persisted record
  Display:  Presentation callback for reports

APPEND-ONLY CONTRACT:
  Store has exactly two operations:
  - Append():  write one record at the end
  - ReadAll(): return every stored line, in append order
  There is no Update or Delete.

MISSING STORE:
  ReadAll on a store that has never been written returns an empty slice
  and no error. "No file yet" and "empty file" are the same thing.

IMPLEMENTATIONS:
  - store/file:   Flat pipe-delimited text file (default)
  - store/sqlite: SQLite table, rows re-encoded as lines on read
  - store/memory: In-memory, for tests and dev

SEE ALSO:
  - ledger.go: Uses Store, Notifier and Display
*/
package payroll

import "context"

// Store persists records. Append-only.
type Store interface {
	// Append writes one record. It never truncates or reorders existing data.
	Append(ctx context.Context, r Record) error

	// ReadAll returns every stored line in append order, undecoded.
	ReadAll(ctx context.Context) ([]string, error)
}

// Notifier is told about every record that reached the store.
type Notifier interface {
	RecordAppended(ctx context.Context, row Row) error
}

// Display receives report output: one call per row, then one for totals.
type Display interface {
	Record(row Row)
	Summary(totals Totals)
}
