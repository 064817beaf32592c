// Package money formats minor-unit amounts for activity descriptions and
// invoice emails. Grouping follows the Indian numbering system, matching the
// en-IN formatting of the frontend.
package money

import (
	"fmt"
	"strings"

	"github.com/divan/num2words"
)

// Format renders minor units as a grouped decimal string, e.g. 35000000 ->
// "3,50,000.00". Indian grouping: the last three digits, then pairs.
func Format(minor int64) string {
	neg := minor < 0
	if neg {
		minor = -minor
	}
	units := minor / 100
	cents := minor % 100

	digits := fmt.Sprintf("%d", units)
	var b strings.Builder
	for i, d := range digits {
		b.WriteRune(d)
		rest := len(digits) - i - 1
		if rest > 2 && rest%2 == 1 {
			b.WriteByte(',')
		}
	}
	out := fmt.Sprintf("%s.%02d", b.String(), cents)
	if neg {
		return "-" + out
	}
	return out
}

// Words spells out the whole-unit part of an amount, for the "amount in
// words" line on invoices. Fractional minor units are ignored.
func Words(minor int64) string {
	units := minor / 100
	if units < 0 {
		units = -units
	}
	return strings.TrimSpace(num2words.Convert(int(units)))
}
