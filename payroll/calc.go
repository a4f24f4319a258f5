package payroll

// Compute returns gross, tax and net pay. It accepts any input, including
// negative or out-of-range values read back from legacy data.
func Compute(hours, rate, taxRate float64) Computation {
	gross := hours * rate
	tax := gross * taxRate
	return Computation{Gross: gross, Tax: tax, Net: gross - tax}
}

// ComputeRecord is Compute over a record's fields.
func ComputeRecord(r Record) Computation {
	return Compute(r.Hours, r.Rate, r.TaxRate)
}
