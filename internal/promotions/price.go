package promotions

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Price is a unit price that accepts JSON numbers or numeric strings.
// Anything unparsable is read as zero so order-value sums stay defined.
type Price struct {
	decimal.Decimal
}

// NewPrice builds a Price from a float amount.
func NewPrice(amount float64) Price {
	return Price{Decimal: decimal.NewFromFloat(amount)}
}

// ParsePrice reads a numeric string, falling back to zero.
func ParsePrice(raw string) Price {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Price{Decimal: decimal.Zero}
	}
	return Price{Decimal: value}
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		p.Decimal = decimal.Zero
		return nil
	}
	*p = ParsePrice(strings.Trim(raw, `"`))
	return nil
}
