package promotions

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/promocheck/pkg/enums"
)

// PromotionID identifies a promotion. Zero means "no promotion".
type PromotionID int64

// UnmarshalJSON accepts a whole number or a numeric string. Anything else
// reads as zero, which leaves the line without a promotion.
func (id *PromotionID) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !value.IsInteger() {
		*id = 0
		return nil
	}
	*id = PromotionID(value.IntPart())
	return nil
}

// Promotion is a read-only snapshot of a promotion authored upstream.
type Promotion struct {
	ID                PromotionID
	PromotionName     string
	Description       *string
	StartDate         time.Time
	EndDate           time.Time
	IsActive          bool
	PromotionType     string
	DiscountValue     *decimal.Decimal
	MinimumOrderValue *decimal.Decimal
	Rules             Rule
}

// CartLine is the engine's view of a cart item.
type CartLine struct {
	ProductID   string       `json:"product_id" validate:"required"`
	Quantity    int          `json:"quantity" validate:"min=0"`
	ItemPrice   Price        `json:"item_price"`
	PromotionID PromotionID  `json:"promotion_id,omitempty"`
	Product     *LineProduct `json:"product,omitempty"`
}

// LineProduct carries the product-level promotion linkage of a cart line.
type LineProduct struct {
	PromotionID   PromotionID    `json:"promotion_id,omitempty"`
	PromotionInfo *PromotionInfo `json:"promotion_info,omitempty"`
}

type PromotionInfo struct {
	PromotionID PromotionID `json:"promotion_id,omitempty"`
}

// Message is rendered verbatim by the cart and checkout screens.
type Message struct {
	Type          enums.PromotionMessageType `json:"type"`
	Message       string                     `json:"message"`
	PromotionName string                     `json:"promotion_name"`
	PromotionID   PromotionID                `json:"promotion_id"`
}

// Suggestion describes an action the shopper can take to become eligible.
type Suggestion struct {
	Type       enums.PromotionSuggestionType `json:"type"`
	Message    string                        `json:"message"`
	ActionText string                        `json:"action_text"`
	Data       map[string]any                `json:"data,omitempty"`
}

// ValidationResult is the verdict for a cart. IsValid and CanProceedToCheckout
// are computed independently: the first only tracks error messages, the second
// is the checkout gate.
type ValidationResult struct {
	IsValid              bool         `json:"is_valid"`
	CanProceedToCheckout bool         `json:"can_proceed_to_checkout"`
	Messages             []Message    `json:"messages"`
	Suggestions          []Suggestion `json:"suggestions"`
}

func newResult() ValidationResult {
	return ValidationResult{
		IsValid:              true,
		CanProceedToCheckout: true,
		Messages:             []Message{},
		Suggestions:          []Suggestion{},
	}
}

// HasErrors reports whether any message is error-typed.
func (r ValidationResult) HasErrors() bool {
	for _, msg := range r.Messages {
		if msg.Type == enums.PromotionMessageTypeError {
			return true
		}
	}
	return false
}
