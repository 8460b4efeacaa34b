package promotions

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/promocheck/pkg/enums"
)

// Rule is the closed set of promotion rule variants. The unexported methods
// keep the set sealed to this package: a new variant does not compile until it
// can be evaluated and can produce (or decline) a tip.
type Rule interface {
	Type() enums.PromotionRuleType
	evaluate(promo Promotion, lines []CartLine) ValidationResult
	tip(name string) (string, bool)
}

// MinimumQuantityRule requires a number of units across lines sharing the promotion.
type MinimumQuantityRule struct {
	MinimumQuantity *int
}

func (MinimumQuantityRule) Type() enums.PromotionRuleType {
	return enums.PromotionRuleTypeMinimumQuantity
}

// Minimum returns the configured minimum or DefaultMinimumQuantity.
func (r MinimumQuantityRule) Minimum() int {
	return intOr(r.MinimumQuantity, DefaultMinimumQuantity)
}

// MinimumOrderValueRule requires a spend across lines sharing the promotion.
type MinimumOrderValueRule struct {
	MinimumValue *decimal.Decimal
}

func (MinimumOrderValueRule) Type() enums.PromotionRuleType {
	return enums.PromotionRuleTypeMinimumOrderValue
}

// Minimum returns the configured spend or DefaultMinimumValue.
func (r MinimumOrderValueRule) Minimum() decimal.Decimal {
	return decimalOr(r.MinimumValue, DefaultMinimumValue)
}

// BuyXGetYRule grants GetQuantity free units per complete set of Buy+Get units.
// The discount fields describe how a pricing engine applies the free units;
// validation only counts them.
type BuyXGetYRule struct {
	BuyQuantity        *int
	GetQuantity        *int
	GetDiscountType    *string
	GetDiscountValue   *decimal.Decimal
	ApplyToLowestPrice *bool
}

func (BuyXGetYRule) Type() enums.PromotionRuleType {
	return enums.PromotionRuleTypeBuyXGetY
}

func (r BuyXGetYRule) Buy() int {
	return intOr(r.BuyQuantity, DefaultBuyQuantity)
}

func (r BuyXGetYRule) Get() int {
	return intOr(r.GetQuantity, DefaultGetQuantity)
}

// SetSize is the number of units in one complete set.
func (r BuyXGetYRule) SetSize() int {
	return r.Buy() + r.Get()
}

// CategoryMixRule asks for products from several categories.
type CategoryMixRule struct {
	MinimumFromEach    *int
	TotalMinimum       *int
	RequiredCategories []string
}

func (CategoryMixRule) Type() enums.PromotionRuleType {
	return enums.PromotionRuleTypeCategoryMix
}

func (r CategoryMixRule) FromEach() int {
	return intOr(r.MinimumFromEach, DefaultMinimumFromEach)
}

func (r CategoryMixRule) Total() int {
	return intOr(r.TotalMinimum, DefaultTotalMinimum)
}

func (r CategoryMixRule) Categories() []string {
	if r.RequiredCategories == nil {
		return DefaultRequiredCategories()
	}
	return r.RequiredCategories
}

// NoRule is always satisfied.
type NoRule struct{}

func (NoRule) Type() enums.PromotionRuleType {
	return enums.PromotionRuleTypeNone
}

func (NoRule) evaluate(Promotion, []CartLine) ValidationResult {
	return newResult()
}

func (NoRule) tip(string) (string, bool) {
	return "", false
}

// ruleIsNone reports whether a promotion rule can be skipped entirely.
func ruleIsNone(rule Rule) bool {
	if rule == nil {
		return true
	}
	_, ok := rule.(NoRule)
	return ok
}
