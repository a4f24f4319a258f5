package payroll

// Totals accumulates count, hours and pay over a sequence of rows.
// It is a value: Add returns a new Totals and leaves the receiver alone.
type Totals struct {
	Count int
	Hours float64
	Gross float64
	Tax   float64
	Net   float64
}

// Add returns t with one more row folded in.
func (t Totals) Add(row Row) Totals {
	return Totals{
		Count: t.Count + 1,
		Hours: t.Hours + row.Hours,
		Gross: t.Gross + row.Gross,
		Tax:   t.Tax + row.Tax,
		Net:   t.Net + row.Net,
	}
}

// Fold sums rows in order. An empty input gives zero Totals.
func Fold(rows []Row) Totals {
	var t Totals
	for _, row := range rows {
		t = t.Add(row)
	}
	return t
}
