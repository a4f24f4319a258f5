package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/warp/payroll/display"
	"github.com/warp/payroll/payroll"
)

type csvRow struct {
	FromDate string `csv:"from_date"`
	ToDate   string `csv:"to_date"`
	Name     string `csv:"name"`
	Hours    string `csv:"hours"`
	Rate     string `csv:"rate"`
	Gross    string `csv:"gross"`
	TaxRate  string `csv:"tax_rate"`
	Tax      string `csv:"tax"`
	Net      string `csv:"net"`
}

// CSV writes rep as comma-separated values with a header row.
func CSV(w io.Writer, rep payroll.Report) error {
	rows := make([]*csvRow, 0, len(rep.Rows)+1)
	for _, r := range rep.Rows {
		rows = append(rows, &csvRow{
			FromDate: r.FromDate,
			ToDate:   r.ToDate,
			Name:     r.Name,
			Hours:    display.Number(r.Hours),
			Rate:     display.Cents(r.Rate).StringFixed(2),
			Gross:    display.Cents(r.Gross).StringFixed(2),
			TaxRate:  display.Number(r.TaxRate),
			Tax:      display.Cents(r.Tax).StringFixed(2),
			Net:      display.Cents(r.Net).StringFixed(2),
		})
	}
	t := rep.Totals
	rows = append(rows, &csvRow{
		Name:  totalLabel(t),
		Hours: display.Number(t.Hours),
		Gross: display.Cents(t.Gross).StringFixed(2),
		Tax:   display.Cents(t.Tax).StringFixed(2),
		Net:   display.Cents(t.Net).StringFixed(2),
	})
	return gocsv.Marshal(rows, w)
}
