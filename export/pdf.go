package export

import (
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/warp/payroll/display"
	"github.com/warp/payroll/payroll"
)

// Column widths in mm; they add up to the printable A4 width.
var pdfWidths = []float64{21, 21, 38, 14, 18, 21, 15, 20, 22}

// PDF writes rep as a one-table A4 document.
func PDF(w io.Writer, rep payroll.Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Payroll report: "+rep.Filter.String()), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	for i, c := range columns {
		pdf.CellFormat(pdfWidths[i], 7, c, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range rep.Rows {
		cells := []string{
			r.FromDate, r.ToDate, r.Name,
			display.Number(r.Hours),
			display.Money(r.Rate),
			display.Money(r.Gross),
			display.Percent(r.TaxRate),
			display.Money(r.Tax),
			display.Money(r.Net),
		}
		pdfRow(pdf, tr, cells)
	}

	t := rep.Totals
	pdf.SetFont("Helvetica", "B", 9)
	pdfRow(pdf, tr, []string{
		"", "", totalLabel(t),
		display.Number(t.Hours),
		"",
		display.Money(t.Gross),
		"",
		display.Money(t.Tax),
		display.Money(t.Net),
	})

	return pdf.Output(w)
}

func pdfRow(pdf *fpdf.Fpdf, tr func(string) string, cells []string) {
	for i, c := range cells {
		align := "R"
		if i < 3 {
			align = "L"
		}
		pdf.CellFormat(pdfWidths[i], 6, tr(c), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
