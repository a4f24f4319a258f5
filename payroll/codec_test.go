package payroll_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll/payroll"
)

func alice() payroll.Record {
	return payroll.Record{
		FromDate: "01/01/2024",
		ToDate:   "01/07/2024",
		Name:     "Alice",
		Hours:    40,
		Rate:     20,
		TaxRate:  0.1,
	}
}

func bob() payroll.Record {
	return payroll.Record{
		FromDate: "01/08/2024",
		ToDate:   "01/14/2024",
		Name:     "Bob",
		Hours:    35,
		Rate:     25,
		TaxRate:  0.2,
	}
}

func TestEncode_FieldOrder(t *testing.T) {
	assert.Equal(t, "01/01/2024|01/07/2024|Alice|40|20|0.1", payroll.Encode(alice()))
}

func TestEncode_FractionalValuesSurviveDecode(t *testing.T) {
	// GIVEN: values with no short decimal form
	r := alice()
	r.Hours = 37.333333333333336
	r.Rate = 19.99
	r.TaxRate = 1.0 / 3

	// WHEN: encoded and decoded back
	got, err := payroll.Decode(payroll.Encode(r))

	// THEN: every float is bit-identical
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestDecode_Valid(t *testing.T) {
	got, err := payroll.Decode("01/01/2024|01/07/2024|Alice|40|20|0.1")

	require.NoError(t, err)
	assert.Equal(t, alice(), got)
}

func TestDecode_ToleratesCRLF(t *testing.T) {
	got, err := payroll.Decode("01/01/2024|01/07/2024|Alice|40|20|0.1\r")

	require.NoError(t, err)
	assert.Equal(t, 0.1, got.TaxRate)
}

func TestDecode_KeepsUnnormalizedDatesAndNegatives(t *testing.T) {
	// Dates are not checked and negative numbers are legacy data, not malformed.
	got, err := payroll.Decode("soon|later|Carol|-5|10|0")

	require.NoError(t, err)
	assert.Equal(t, "soon", got.FromDate)
	assert.Equal(t, -5.0, got.Hours)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		reason string
	}{
		{"empty line", "", "wrong field count"},
		{"five fields", "01/01/2024|01/07/2024|Alice|40|20", "wrong field count"},
		{"seven fields", "01/01/2024|01/07/2024|Alice|40|20|0.1|x", "wrong field count"},
		{"hours text", "01/01/2024|01/07/2024|Alice|forty|20|0.1", "hours is not a number"},
		{"rate empty", "01/01/2024|01/07/2024|Alice|40||0.1", "rate is not a number"},
		{"tax NaN", "01/01/2024|01/07/2024|Alice|40|20|NaN", "tax rate is not a number"},
		{"hours Inf", "01/01/2024|01/07/2024|Alice|Inf|20|0.1", "hours is not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := payroll.Decode(tt.line)

			require.Error(t, err)
			assert.True(t, payroll.IsMalformed(err))
			var me *payroll.MalformedError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.reason, me.Reason)
		})
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name              string
		hours, rate, tax  float64
		gross, taxes, net float64
	}{
		{"alice", 40, 20, 0.1, 800, 80, 720},
		{"bob", 35, 25, 0.2, 875, 175, 700},
		{"zero hours", 0, 30, 0.25, 0, 0, 0},
		{"no tax", 10, 15, 0, 150, 0, 150},
		{"all tax", 10, 15, 1, 150, 150, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := payroll.Compute(tt.hours, tt.rate, tt.tax)

			assert.InDelta(t, tt.gross, c.Gross, 1e-9)
			assert.InDelta(t, tt.taxes, c.Tax, 1e-9)
			assert.InDelta(t, tt.net, c.Net, 1e-9)
			assert.InDelta(t, c.Gross, c.Tax+c.Net, 1e-9)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*payroll.Record)
		want   error
	}{
		{"valid", func(r *payroll.Record) {}, nil},
		{"empty name", func(r *payroll.Record) { r.Name = "  " }, payroll.ErrEmptyName},
		{"pipe in name", func(r *payroll.Record) { r.Name = "A|B" }, payroll.ErrNameDelimiter},
		{"newline in name", func(r *payroll.Record) { r.Name = "A\nB" }, payroll.ErrNameDelimiter},
		{"pipe in date", func(r *payroll.Record) { r.FromDate = "1|2" }, payroll.ErrDateDelimiter},
		{"negative hours", func(r *payroll.Record) { r.Hours = -1 }, payroll.ErrNegativeHours},
		{"NaN hours", func(r *payroll.Record) { r.Hours = math.NaN() }, payroll.ErrNegativeHours},
		{"negative rate", func(r *payroll.Record) { r.Rate = -0.01 }, payroll.ErrNegativeRate},
		{"tax above one", func(r *payroll.Record) { r.TaxRate = 1.5 }, payroll.ErrTaxRateRange},
		{"tax below zero", func(r *payroll.Record) { r.TaxRate = -0.1 }, payroll.ErrTaxRateRange},
		{"name at limit", func(r *payroll.Record) { r.Name = strings.Repeat("n", payroll.MaxNameLength) }, nil},
		{"name too long", func(r *payroll.Record) { r.Name = strings.Repeat("n", payroll.MaxNameLength+1) }, payroll.ErrNameTooLong},
		{"date too long", func(r *payroll.Record) { r.FromDate = strings.Repeat("1", payroll.MaxDateLength+1) }, payroll.ErrDateTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := alice()
			tt.mutate(&r)

			err := r.Validate()

			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, payroll.IsInvalid(err))
		})
	}
}
