/*
Package prompt collects validated payroll fields from an interactive user.

PURPOSE:
  Every prompt loops until the answer is valid, printing a short hint on
  each bad answer. Callers get typed, already-validated values.

TERMINATION:
  Typing "end" (any case) at the name prompt ends the entry session.
  Closed input ends it too: at the name prompt it reads as "end", anywhere
  else it is io.ErrUnexpectedEOF so a half-entered record is never saved.

SEE ALSO:
  - session/: The entry loop that drives these prompts
  - payroll/dates.go: Accepted date forms
*/
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/warp/payroll/payroll"
)

// EndSentinel typed as a name ends the session.
const EndSentinel = "end"

// ErrEnd is returned by Name when the user is done entering records.
var ErrEnd = errors.New("end of entry")

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ask prints label and returns the trimmed answer. io.EOF means no more input.
func (p *Prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) say(msg string) {
	fmt.Fprintln(p.out, msg)
}

// midRecord converts EOF inside a record into io.ErrUnexpectedEOF.
func midRecord(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Name asks for an employee name. It returns ErrEnd on "end" or closed input.
func (p *Prompter) Name() (string, error) {
	for {
		s, err := p.ask("Employee name: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrEnd
			}
			return "", err
		}
		switch {
		case strings.EqualFold(s, EndSentinel):
			return "", ErrEnd
		case s == "":
			p.say("Name cannot be empty. Try again.")
		case strings.ContainsAny(s, payroll.Delimiter):
			p.say("Name cannot contain '|'. Try again.")
		case len(s) > payroll.MaxNameLength:
			p.say(fmt.Sprintf("Name cannot be longer than %d characters. Try again.", payroll.MaxNameLength))
		default:
			return s, nil
		}
	}
}

// Hours asks for a non-negative number of hours.
func (p *Prompter) Hours() (float64, error) {
	return p.nonNegative("Hours worked: ",
		"Hours cannot be negative.",
		"Please enter a valid number for hours (e.g. 40 or 12.5).")
}

// Rate asks for a non-negative hourly rate.
func (p *Prompter) Rate() (float64, error) {
	return p.nonNegative("Hourly rate: ",
		"Hourly rate cannot be negative.",
		"Please enter a valid hourly rate (e.g. 12.50).")
}

func (p *Prompter) nonNegative(label, negative, invalid string) (float64, error) {
	for {
		s, err := p.ask(label)
		if err != nil {
			return 0, midRecord(err)
		}
		v, ok := parseNumber(s)
		if !ok {
			p.say(invalid)
			continue
		}
		if v < 0 {
			p.say(negative)
			continue
		}
		return v, nil
	}
}

// TaxRate asks for a tax rate as a percent or a fraction and returns the fraction.
func (p *Prompter) TaxRate() (float64, error) {
	for {
		s, err := p.ask("Income tax rate (e.g. 20 or 0.2 or 20%): ")
		if err != nil {
			return 0, midRecord(err)
		}
		r, err := ParseTaxRate(s)
		if err != nil {
			if errors.Is(err, ErrTaxRateRange) {
				p.say("Please enter a reasonable tax rate between 0 and 100%.")
			} else {
				p.say("Please enter a valid tax rate (percent or decimal).")
			}
			continue
		}
		return r, nil
	}
}

// DateRange asks for a from and a to date until both parse, and returns
// them in canonical mm/dd/yyyy form.
func (p *Prompter) DateRange() (from, to string, err error) {
	from, err = p.date("From date (mm/dd/yyyy): ")
	if err != nil {
		return "", "", err
	}
	to, err = p.date("To date (mm/dd/yyyy): ")
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

func (p *Prompter) date(label string) (string, error) {
	for {
		s, err := p.ask(label)
		if err != nil {
			return "", midRecord(err)
		}
		if d, ok := payroll.NormalizeDate(s); ok {
			return d, nil
		}
		p.say("Please enter a valid date (mm/dd/yyyy).")
	}
}

// ReportFilter asks which records to report: a from date, or "all".
// Closed input reads as "all".
func (p *Prompter) ReportFilter() (payroll.Filter, error) {
	for {
		s, err := p.ask("Report from date (mm/dd/yyyy) or 'All': ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return payroll.All(), nil
			}
			return payroll.Filter{}, err
		}
		if s == "" || strings.EqualFold(s, "all") {
			return payroll.All(), nil
		}
		if d, ok := payroll.NormalizeDate(s); ok {
			return payroll.ExactDate(d), nil
		}
		p.say("Please enter a valid date (mm/dd/yyyy) or 'All'.")
	}
}

// =============================================================================
// PARSING
// =============================================================================

var (
	ErrInvalidTaxRate = errors.New("invalid tax rate")
	ErrTaxRateRange   = errors.New("tax rate must be between 0 and 100%")
)

// ParseTaxRate accepts "20%", "20" or "0.2" and returns 0.2. A trailing %
// always means percent; a bare value above 1 is read as a percent too.
func ParseTaxRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	num, percent := strings.CutSuffix(s, "%")
	v, ok := parseNumber(num)
	if !ok {
		return 0, ErrInvalidTaxRate
	}
	if percent || v > 1 {
		v /= 100
	}
	if v < 0 || v > 1 {
		return 0, ErrTaxRateRange
	}
	return v, nil
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
