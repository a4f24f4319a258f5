// Package display renders payroll values for people: currency, percentages
// and the per-employee and summary blocks printed by the CLI.
package display

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money formats v as dollars with thousands separators, rounded to cents
// half away from zero: 1234.5 -> "$1,234.50", -3 -> "-$3.00".
func Money(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + "$" + groupThousands(intPart) + "." + frac
}

// Percent formats a fraction as a percentage with two decimals: 0.2 -> "20.00%".
func Percent(fraction float64) string {
	return decimal.NewFromFloat(fraction).Mul(hundred).StringFixed(2) + "%"
}

// Number formats a plain quantity (hours, a tax fraction) in its shortest
// exact form: 40 -> "40", 12.5 -> "12.5", 0.1 -> "0.1".
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Cents rounds v to a two-place decimal for exports.
func Cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
