package promotions

import "github.com/shopspring/decimal"

// Defaults applied when a rule omits a field. Every rule accessor reads from
// this block; nothing else in the package hard-codes a threshold.
const (
	DefaultMinimumQuantity = 2
	DefaultBuyQuantity     = 2
	DefaultGetQuantity     = 1
	DefaultMinimumFromEach = 1
	DefaultTotalMinimum    = 2
)

// DefaultMinimumValue is the order value threshold for minimum_order_value rules.
var DefaultMinimumValue = decimal.NewFromInt(100)

// DefaultRequiredCategories is empty: a category_mix rule without categories requires none.
func DefaultRequiredCategories() []string {
	return []string{}
}

func intOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

func decimalOr(value *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if value == nil {
		return fallback
	}
	return *value
}
