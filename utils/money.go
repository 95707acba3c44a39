package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatDH formats a price as "1 290.00 DH". Uses a space as thousands
// separator and two decimals, the way prices are shown in the catalog.
func FormatDH(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + suffix
	b.Grow(len(s) + len(intPart)/3 + 4)
	if amount.IsNegative() {
		b.WriteByte('-')
	}

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(' ')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	b.WriteString(" DH")

	return b.String()
}
