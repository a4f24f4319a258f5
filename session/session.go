// Package session runs the interactive "enter records, then report" flow.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/warp/payroll/logging"
	"github.com/warp/payroll/payroll"
	"github.com/warp/payroll/prompt"
)

// Output is where the session shows results.
type Output interface {
	payroll.Display
	Report(rep payroll.Report)
	Warning(w *payroll.PersistenceWarning)
	Notice(msg string)
}

// Runner drives one entry session against a ledger.
type Runner struct {
	Prompter *prompt.Prompter
	Ledger   *payroll.Ledger
	Out      Output
	Log      *logging.Logger
}

// Enter collects records until the user types "end", showing each record's
// pay as it is entered and the session totals at the end. A record that
// fails to persist is still counted in the session totals. If ctx is
// cancelled, Enter returns ctx.Err() before the next write.
func (r *Runner) Enter(ctx context.Context) (payroll.Session, error) {
	log := r.logger()
	r.Out.Notice("Payroll entry - enter employee data. Type 'End' for the name to finish.")

	var s payroll.Session
	for {
		rec, err := r.next()
		if errors.Is(err, prompt.ErrEnd) {
			break
		}
		if err != nil {
			return s, fmt.Errorf("read record: %w", err)
		}
		// A cancelled session stops before writing, so no record is
		// reported as entered but silently missing from the store.
		if err := ctx.Err(); err != nil {
			return s, err
		}

		res := r.Ledger.Record(ctx, rec)
		switch res.Status {
		case payroll.StatusRejected:
			r.Out.Notice("Record not accepted: " + res.Err.Error())
		case payroll.StatusFailed:
			r.Out.Record(res.Row)
			r.Out.Warning(res.Warning)
		default:
			r.Out.Record(res.Row)
		}
		s = s.Add(res)
	}

	r.Out.Summary(s.Totals)
	log.Info("Entry session finished",
		logging.FieldCount, s.Totals.Count,
		"failed", s.Failed,
		"rejected", s.Rejected)
	return s, nil
}

// Report asks for a filter and prints the matching stored records.
func (r *Runner) Report(ctx context.Context) (payroll.Report, error) {
	filter, err := r.Prompter.ReportFilter()
	if err != nil {
		return payroll.Report{}, fmt.Errorf("read report filter: %w", err)
	}
	rep, err := r.Ledger.Report(ctx, filter)
	if err != nil {
		return rep, fmt.Errorf("build report: %w", err)
	}
	r.Out.Report(rep)
	return rep, nil
}

// Run is Enter followed by Report.
func (r *Runner) Run(ctx context.Context) error {
	if _, err := r.Enter(ctx); err != nil {
		return err
	}
	_, err := r.Report(ctx)
	return err
}

func (r *Runner) next() (payroll.Record, error) {
	p := r.Prompter
	name, err := p.Name()
	if err != nil {
		return payroll.Record{}, err
	}
	from, to, err := p.DateRange()
	if err != nil {
		return payroll.Record{}, err
	}
	hours, err := p.Hours()
	if err != nil {
		return payroll.Record{}, err
	}
	rate, err := p.Rate()
	if err != nil {
		return payroll.Record{}, err
	}
	taxRate, err := p.TaxRate()
	if err != nil {
		return payroll.Record{}, err
	}
	return payroll.Record{
		FromDate: from,
		ToDate:   to,
		Name:     name,
		Hours:    hours,
		Rate:     rate,
		TaxRate:  taxRate,
	}, nil
}

func (r *Runner) logger() *logging.Logger {
	if r.Log == nil {
		return logging.Nop()
	}
	return r.Log.WithComponent(logging.ComponentSession)
}
