package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/warp/payroll/payroll"
)

const ruleWidth = 40

// Console writes employee and summary blocks to a terminal or any writer.
// It implements payroll.Display.
type Console struct {
	out     io.Writer
	heading lipgloss.Style
	warn    lipgloss.Style
}

// NewConsole returns a Console writing to out. Styling is dropped
// automatically when out is not a terminal.
func NewConsole(out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:     out,
		heading: r.NewStyle().Bold(true),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

var _ payroll.Display = (*Console)(nil)

// Record prints one employee block.
func (c *Console) Record(row payroll.Row) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "%s %s\n", c.heading.Render("Employee:"), row.Name)
	fmt.Fprintf(c.out, "Period: %s - %s\n", row.FromDate, row.ToDate)
	fmt.Fprintf(c.out, "Hours worked: %s\n", Number(row.Hours))
	fmt.Fprintf(c.out, "Hourly rate: %s\n", Money(row.Rate))
	fmt.Fprintf(c.out, "Gross pay: %s\n", Money(row.Gross))
	fmt.Fprintf(c.out, "Income tax rate: %s\n", Percent(row.TaxRate))
	fmt.Fprintf(c.out, "Income taxes: %s\n", Money(row.Tax))
	fmt.Fprintf(c.out, "Net pay: %s\n", Money(row.Net))
	fmt.Fprintln(c.out, strings.Repeat("-", ruleWidth))
}

// Summary prints the totals block.
func (c *Console) Summary(t payroll.Totals) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.heading.Render("Summary for all employees:"))
	fmt.Fprintf(c.out, "Total employees: %d\n", t.Count)
	fmt.Fprintf(c.out, "Total hours worked: %s\n", Number(t.Hours))
	fmt.Fprintf(c.out, "Total gross pay: %s\n", Money(t.Gross))
	fmt.Fprintf(c.out, "Total income taxes: %s\n", Money(t.Tax))
	fmt.Fprintf(c.out, "Total net pay: %s\n", Money(t.Net))
}

// Report prints a report title, every row, the summary and a note about
// skipped lines if there were any.
func (c *Console) Report(rep payroll.Report) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.heading.Render("Payroll report: "+rep.Filter.String()))
	if len(rep.Rows) == 0 {
		fmt.Fprintln(c.out, "No matching records.")
	}
	payroll.Emit(rep, c)
	if n := len(rep.Skipped); n > 0 {
		fmt.Fprintln(c.out, c.warn.Render(fmt.Sprintf("Note: %d unreadable line(s) in the store were skipped.", n)))
	}
}

// Warning prints a persistence warning without stopping the session.
func (c *Console) Warning(w *payroll.PersistenceWarning) {
	fmt.Fprintln(c.out, c.warn.Render("Warning: "+w.Error()))
}

// Notice prints a one-line message.
func (c *Console) Notice(msg string) {
	fmt.Fprintln(c.out, msg)
}
