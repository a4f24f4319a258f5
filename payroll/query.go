package payroll

// Run selects records matching filter and pairs each with its recomputed
// pay. Store order is preserved.
func Run(records []Record, filter Filter) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		if !filter.Match(r) {
			continue
		}
		rows = append(rows, NewRow(r))
	}
	return rows
}

// Match reports whether r is selected by the filter.
//
// FilterExactDate is a literal comparison against FromDate. A record whose
// period merely contains the date is not selected; use FilterContaining.
func (f Filter) Match(r Record) bool {
	switch f.Kind {
	case FilterExactDate:
		return r.FromDate == f.Date
	case FilterContaining:
		return contains(r, f.Date)
	default:
		return true
	}
}

func contains(r Record, date string) bool {
	d, ok := ParseDate(date)
	if !ok {
		return false
	}
	from, ok := ParseDate(r.FromDate)
	if !ok {
		return false
	}
	to, ok := ParseDate(r.ToDate)
	if !ok {
		return false
	}
	return !d.Before(from) && !d.After(to)
}
