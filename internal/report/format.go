package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency formats v as whole dollars with thousands separators, e.g. "$114,050".
func Currency(v float64) string {
	return "$" + groupThousands(decimal.NewFromFloat(v).Round(0))
}

// Cents formats v with two decimals and thousands separators, e.g. "$1,234.50".
func Cents(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	whole := d.Truncate(0)
	frac := d.Sub(whole).Abs().StringFixed(2)[1:] // ".50"
	s := groupThousands(whole)
	if d.IsNegative() && !whole.IsNegative() {
		s = "-" + s
	}
	return "$" + s + frac
}

// Percent formats a whole-number percentage.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).Round(3).String() + "%"
}

func groupThousands(d decimal.Decimal) string {
	s := d.Abs().Truncate(0).String()
	var b strings.Builder
	if d.IsNegative() && !d.IsZero() {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
