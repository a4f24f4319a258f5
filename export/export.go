/*
Package export writes a payroll report to a file format for other tools.

FORMATS:
  csv:  one row per record plus a TOTAL row (gocsv)
  xlsx: a "Payroll" sheet with a bold header and a TOTAL row (excelize)
  pdf:  an A4 table with the same columns (fpdf)

Money is rounded to cents here; the report itself keeps full precision.

SEE ALSO:
  - payroll/ledger.go: Report
  - display/money.go:  Rounding
*/
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/warp/payroll/payroll"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: must be csv, xlsx or pdf", s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

// Filename returns a default download name for f.
func (f Format) Filename() string {
	return "payroll-report." + string(f)
}

// Write renders rep to w in format f.
func Write(w io.Writer, f Format, rep payroll.Report) error {
	switch f {
	case FormatCSV:
		return CSV(w, rep)
	case FormatXLSX:
		return XLSX(w, rep)
	case FormatPDF:
		return PDF(w, rep)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

var columns = []string{"From", "To", "Name", "Hours", "Rate", "Gross", "Tax rate", "Tax", "Net"}

func totalLabel(t payroll.Totals) string {
	return fmt.Sprintf("TOTAL (%d employees)", t.Count)
}
