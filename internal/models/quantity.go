package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuantity parses a quantity cell. Thousands separators (apostrophe,
// space) are dropped and a decimal comma is accepted.
func ParseQuantity(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.NewReplacer("'", "", "’", "", " ", "", "\u00a0", "").Replace(cleaned)
	if strings.Count(cleaned, ",") == 1 && !strings.Contains(cleaned, ".") {
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty quantity")
	}
	q, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid quantity '%s': %w", s, err)
	}
	return q, nil
}

// TotalQuantity sums the numeric quantities of lines. Lines whose quantity is
// not a number are counted in the second return value and left out of the sum.
func TotalQuantity(lines []OrderLine) (decimal.Decimal, int) {
	total := decimal.Zero
	nonNumeric := 0
	for _, l := range lines {
		q, err := ParseQuantity(l.Quantity)
		if err != nil {
			nonNumeric++
			continue
		}
		total = total.Add(q)
	}
	return total, nonNumeric
}
