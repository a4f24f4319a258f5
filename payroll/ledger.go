/*
ledger.go - Orchestration of the record pipeline over a Store

PURPOSE:
  The Ledger is the single entry point callers use. It owns the write path
  (validate, encode, append, notify) and the read path (read, decode,
  filter, recompute, fold). The Store underneath only moves lines.

WRITE PATH:
  Record() never fails the caller's session. The outcome comes back as an
  AppendResult:
    StatusPersisted: the line is in the store
    StatusFailed:    the store refused the write; Warning says why
    StatusRejected:  the record broke a write-path invariant

READ PATH:
  Scan() decodes every line. Lines that fail are not returned as records
  but are listed in ScanResult.Skipped with their line number, so data loss
  is visible without failing the read. Only an I/O error on the read itself
  is returned.

EXAMPLE FLOW:
  1. Record(Alice 40h @ 20, 10%)    -> persisted, gross 800
  2. Record(Bob 35h @ 25, 20%)      -> persisted, gross 875
  3. Report(All)                    -> 2 rows, gross 1675, tax 255, net 1420
  4. Report(ExactDate(01/01/2024))  -> Alice only

SEE ALSO:
  - store.go: Store, Notifier and Display interfaces
  - query.go: Filter semantics
*/
package payroll

import (
	"context"
	"errors"

	"github.com/warp/payroll/logging"
)

// =============================================================================
// RESULTS
// =============================================================================

type AppendStatus string

const (
	StatusPersisted AppendStatus = "persisted"
	StatusFailed    AppendStatus = "failed"
	StatusRejected  AppendStatus = "rejected"
)

// AppendResult is the outcome of Ledger.Record.
type AppendResult struct {
	Status       AppendStatus
	Row          Row
	Warning      *PersistenceWarning // set when Status == StatusFailed
	Err          error               // set when Status == StatusRejected
	DateFallback bool                // a date could not be normalized and was kept raw
}

// Persisted reports whether the record reached the store.
func (r AppendResult) Persisted() bool {
	return r.Status == StatusPersisted
}

// SkippedLine is a stored line that could not be decoded.
type SkippedLine struct {
	Line   int // 1-based
	Reason string
}

// ScanResult holds every decodable record plus what was skipped.
type ScanResult struct {
	Records []Record
	Skipped []SkippedLine
}

// Report is the output of one reporting pass.
type Report struct {
	Filter  Filter
	Rows    []Row
	Totals  Totals
	Skipped []SkippedLine
}

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	store    Store
	notifier Notifier
	log      *logging.Logger
}

type Option func(*Ledger)

// WithNotifier registers a notifier called after every persisted append.
func WithNotifier(n Notifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

// WithLogger sets the ledger's logger.
func WithLogger(log *logging.Logger) Option {
	return func(l *Ledger) { l.log = log.WithComponent(logging.ComponentLedger) }
}

func NewLedger(store Store, opts ...Option) *Ledger {
	l := &Ledger{store: store, log: logging.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record validates, normalizes dates and appends r. The returned row always
// carries the computed pay so the caller can display it whatever happened.
func (l *Ledger) Record(ctx context.Context, r Record) AppendResult {
	var fallback bool
	if from, ok := NormalizeDate(r.FromDate); ok {
		r.FromDate = from
	} else {
		r.FromDate, fallback = from, true
	}
	if to, ok := NormalizeDate(r.ToDate); ok {
		r.ToDate = to
	} else {
		r.ToDate, fallback = to, true
	}

	result := AppendResult{Row: NewRow(r), DateFallback: fallback}

	if err := r.Validate(); err != nil {
		l.log.Warn("Record rejected", logging.FieldName, r.Name, logging.FieldError, err.Error())
		result.Status = StatusRejected
		result.Err = err
		return result
	}

	if fallback {
		l.log.Warn("Date not in mm/dd/yyyy form, storing as entered",
			logging.FieldFromDate, r.FromDate,
			logging.FieldToDate, r.ToDate)
	}

	if err := l.store.Append(ctx, r); err != nil {
		l.log.Warn("Failed to persist record",
			logging.FieldOperation, logging.OpAppend,
			logging.FieldName, r.Name,
			logging.FieldError, err.Error())
		result.Status = StatusFailed
		result.Warning = &PersistenceWarning{Record: r, Err: err}
		return result
	}

	result.Status = StatusPersisted
	l.log.Debug("Record persisted", logging.FieldName, r.Name, logging.FieldFromDate, r.FromDate)

	if l.notifier != nil {
		if err := l.notifier.RecordAppended(ctx, result.Row); err != nil {
			// The record is on disk; a lost notification is not a failed append.
			l.log.Warn("Failed to publish record notification",
				logging.FieldOperation, logging.OpPublish,
				logging.FieldError, err.Error())
		}
	}
	return result
}

// Scan reads and decodes the whole store.
func (l *Ledger) Scan(ctx context.Context) (ScanResult, error) {
	lines, err := l.store.ReadAll(ctx)
	if err != nil {
		return ScanResult{}, err
	}

	res := ScanResult{Records: make([]Record, 0, len(lines))}
	for i, line := range lines {
		r, err := Decode(line)
		if err != nil {
			reason := err.Error()
			var me *MalformedError
			if errors.As(err, &me) {
				reason = me.Reason
			}
			res.Skipped = append(res.Skipped, SkippedLine{Line: i + 1, Reason: reason})
			l.log.Debug("Skipping malformed line", logging.FieldLine, i+1, logging.FieldReason, reason)
			continue
		}
		res.Records = append(res.Records, r)
	}

	if len(res.Skipped) > 0 {
		l.log.Info("Store contains malformed lines",
			logging.FieldOperation, logging.OpScan,
			logging.FieldSkipped, len(res.Skipped))
	}
	return res, nil
}

// Report scans the store, applies filter and folds the totals.
func (l *Ledger) Report(ctx context.Context, filter Filter) (Report, error) {
	scan, err := l.Scan(ctx)
	if err != nil {
		return Report{Filter: filter}, err
	}
	rows := Run(scan.Records, filter)
	return Report{
		Filter:  filter,
		Rows:    rows,
		Totals:  Fold(rows),
		Skipped: scan.Skipped,
	}, nil
}

// Emit sends a report to a display: one Record call per row, then Summary.
func Emit(report Report, d Display) {
	for _, row := range report.Rows {
		d.Record(row)
	}
	d.Summary(report.Totals)
}

// =============================================================================
// SESSION - Running totals of one entry session
// =============================================================================

// Session tracks what was entered in one interactive run, whether or not
// each record reached the store.
type Session struct {
	Totals   Totals
	Failed   int
	Rejected int
}

// Add folds an append result into the session.
func (s Session) Add(res AppendResult) Session {
	switch res.Status {
	case StatusRejected:
		s.Rejected++
		return s
	case StatusFailed:
		s.Failed++
	}
	s.Totals = s.Totals.Add(res.Row)
	return s
}
