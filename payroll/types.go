/*
Package payroll provides the record persistence and reporting pipeline.

PURPOSE:
  A payroll record is one employee timesheet entry: who, which date range,
  how many hours, at what rate, with what tax rate. Records are appended to
  a store exactly once and never changed. Pay (gross, tax, net) is never
  stored - it is recomputed from the raw inputs on every read.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record:      The stored timesheet entry (six fields)
  - Computation: Derived gross/tax/net for one record
  - Row:         A record paired with its computation (query output)
  - Filter:      Which stored records a report should include

DESIGN PRINCIPLES:
  1. Append-only: the store has Append and ReadAll, nothing else
  2. Derived values are recomputed, never cached on disk
  3. Reads degrade by omission: a bad line is skipped, never fatal

USAGE:
  rec := payroll.Record{
      FromDate: "01/01/2024",
      ToDate:   "01/07/2024",
      Name:     "Alice",
      Hours:    40,
      Rate:     20,
      TaxRate:  0.1,
  }
  ledger := payroll.NewLedger(store)
  result := ledger.Record(ctx, rec)

SEE ALSO:
  - calc.go:   Pay computation
  - codec.go:  Line format
  - query.go:  Report filtering
  - totals.go: Aggregation
  - ledger.go: Orchestration over a Store
*/
package payroll

import (
	"math"
	"strings"
)

// =============================================================================
// RECORD - One timesheet entry as stored
// =============================================================================

// Record is one employee timesheet entry.
// Dates are kept as text: canonical mm/dd/yyyy when the caller could
// normalize them, the raw input otherwise.
type Record struct {
	FromDate string
	ToDate   string
	Name     string
	Hours    float64
	Rate     float64
	TaxRate  float64 // fraction in [0,1], not percent
}

// Field length limits on the write path. A stored line stays far below
// any reader buffer.
const (
	MaxNameLength = 256
	MaxDateLength = 64
)

// Validate checks the write-path invariants. Records already on disk are
// never validated this way; they only have to decode.
func (r Record) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return invalid(ErrEmptyName)
	}
	if strings.ContainsAny(r.Name, Delimiter+"\r\n") {
		return invalid(ErrNameDelimiter)
	}
	if len(r.Name) > MaxNameLength {
		return invalid(ErrNameTooLong)
	}
	if !finite(r.Hours) || r.Hours < 0 {
		return invalid(ErrNegativeHours)
	}
	if !finite(r.Rate) || r.Rate < 0 {
		return invalid(ErrNegativeRate)
	}
	if !finite(r.TaxRate) || r.TaxRate < 0 || r.TaxRate > 1 {
		return invalid(ErrTaxRateRange)
	}
	if strings.ContainsAny(r.FromDate+r.ToDate, Delimiter+"\r\n") {
		return invalid(ErrDateDelimiter)
	}
	if len(r.FromDate) > MaxDateLength || len(r.ToDate) > MaxDateLength {
		return invalid(ErrDateTooLong)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// =============================================================================
// COMPUTATION - Derived, never stored
// =============================================================================

// Computation is the pay derived from a record.
type Computation struct {
	Gross float64
	Tax   float64
	Net   float64
}

// Row is a record together with its recomputed pay.
type Row struct {
	Record
	Computation
}

// NewRow pairs a record with its computation.
func NewRow(r Record) Row {
	return Row{Record: r, Computation: ComputeRecord(r)}
}

// =============================================================================
// FILTER - Report selection
// =============================================================================

// FilterKind names how a Filter selects records.
type FilterKind string

const (
	// FilterAll keeps every decoded record.
	FilterAll FilterKind = "all"
	// FilterExactDate keeps records whose FromDate textually equals Date.
	// It does NOT test whether Date falls inside [FromDate, ToDate].
	FilterExactDate FilterKind = "exact"
	// FilterContaining keeps records whose [FromDate, ToDate] contains Date.
	FilterContaining FilterKind = "containing"
)

// Filter selects records for a report.
type Filter struct {
	Kind FilterKind
	Date string
}

// All returns a filter that keeps every record.
func All() Filter { return Filter{Kind: FilterAll} }

// ExactDate returns a filter matching records whose FromDate is exactly date.
// Pass a canonical mm/dd/yyyy date; comparison is textual.
func ExactDate(date string) Filter { return Filter{Kind: FilterExactDate, Date: date} }

// Containing returns a filter matching records whose period includes date.
func Containing(date string) Filter { return Filter{Kind: FilterContaining, Date: date} }

// String describes the filter for report titles.
func (f Filter) String() string {
	switch f.Kind {
	case FilterExactDate:
		return "from date " + f.Date
	case FilterContaining:
		return "period containing " + f.Date
	default:
		return "all records"
	}
}
