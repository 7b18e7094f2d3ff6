package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Size is a dish portion size. Every dish is offered in up to three sizes,
// each with its own portion and price.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// ParseSize parses a wire-format size string.
func ParseSize(s string) (Size, error) {
	switch Size(s) {
	case SizeSmall, SizeMedium, SizeLarge:
		return Size(s), nil
	}
	return "", fmt.Errorf("invalid portion size: %q", s)
}

// Valid reports whether the size is one of the known portion sizes.
func (s Size) Valid() bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

// Food represents a dish on the menu.
type Food struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Category     string          `json:"category"`
	IsSpecial    bool            `json:"isSpecial"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	DiscountBase decimal.Decimal `json:"discount_base"`
	SmallSize    int             `json:"small_size"`
	MediumSize   int             `json:"medium_size"`
	LargeSize    int             `json:"large_size"`
	SmallPrice   decimal.Decimal `json:"small_price"`
	MediumPrice  decimal.Decimal `json:"medium_price"`
	LargePrice   decimal.Decimal `json:"large_price"`
	Unit         string          `json:"unit"`
}

// PriceFor returns the unit price of the dish in the given size.
func (f Food) PriceFor(size Size) decimal.Decimal {
	switch size {
	case SizeSmall:
		return f.SmallPrice
	case SizeMedium:
		return f.MediumPrice
	case SizeLarge:
		return f.LargePrice
	}
	return decimal.Zero
}

// PortionFor returns the portion amount of the dish in the given size,
// expressed in the dish's unit.
func (f Food) PortionFor(size Size) int {
	switch size {
	case SizeSmall:
		return f.SmallSize
	case SizeMedium:
		return f.MediumSize
	case SizeLarge:
		return f.LargeSize
	}
	return 0
}
