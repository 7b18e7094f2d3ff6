package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney extracts a decimal amount from a backend money string such as
// "12.50 €", "€12.50" or "12,50". The backend is not consistent about
// currency placement or the decimal separator, so strip everything that is
// not part of the number.
func ParseMoney(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r == ',':
			b.WriteRune('.')
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("no amount in money string %q", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed money string %q: %w", s, err)
	}
	return d, nil
}
