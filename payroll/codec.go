/*
codec.go - Line format for the flat record store

FORMAT:
  One record per line, six fields separated by '|', in fixed order:

    fromDate|toDate|name|hours|rate|taxRate

  Example:
    01/01/2024|01/07/2024|Alice|40|20|0.1

ENCODING:
  Dates are written verbatim; the caller normalizes them first.
  Numbers use the shortest text that parses back to the same float64.

DECODING:
  Exactly six fields, three parseable finite numbers. Anything else is
  a MalformedError. Dates are not checked.

SEE ALSO:
  - dates.go:      Date normalization before encoding
  - store/file:    The flat file that holds these lines
*/
package payroll

import (
	"math"
	"strconv"
	"strings"
)

const (
	// Delimiter separates fields on a line.
	Delimiter = "|"
	// FieldCount is the number of fields in a valid line.
	FieldCount = 6
)

// Encode renders a record as one line, without the trailing newline.
func Encode(r Record) string {
	return strings.Join([]string{
		r.FromDate,
		r.ToDate,
		r.Name,
		formatFloat(r.Hours),
		formatFloat(r.Rate),
		formatFloat(r.TaxRate),
	}, Delimiter)
}

// Decode parses one line. A failure is always a *MalformedError.
func Decode(line string) (Record, error) {
	line = strings.TrimSuffix(line, "\r")
	parts := strings.Split(line, Delimiter)
	if len(parts) != FieldCount {
		return Record{}, &MalformedError{Reason: "wrong field count", Fields: len(parts)}
	}

	hours, ok := parseFloat(parts[3])
	if !ok {
		return Record{}, &MalformedError{Reason: "hours is not a number", Fields: len(parts)}
	}
	rate, ok := parseFloat(parts[4])
	if !ok {
		return Record{}, &MalformedError{Reason: "rate is not a number", Fields: len(parts)}
	}
	taxRate, ok := parseFloat(parts[5])
	if !ok {
		return Record{}, &MalformedError{Reason: "tax rate is not a number", Fields: len(parts)}
	}

	return Record{
		FromDate: parts[0],
		ToDate:   parts[1],
		Name:     parts[2],
		Hours:    hours,
		Rate:     rate,
		TaxRate:  taxRate,
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
