package enums

import "fmt"

// PromotionRuleType tags the rule variant attached to a promotion.
type PromotionRuleType string

const (
	PromotionRuleTypeMinimumQuantity   PromotionRuleType = "minimum_quantity_same_promotion"
	PromotionRuleTypeMinimumOrderValue PromotionRuleType = "minimum_order_value"
	PromotionRuleTypeBuyXGetY          PromotionRuleType = "buy_x_get_y"
	PromotionRuleTypeCategoryMix       PromotionRuleType = "category_mix"
	PromotionRuleTypeNone              PromotionRuleType = "none"
)

var validPromotionRuleTypes = []PromotionRuleType{
	PromotionRuleTypeMinimumQuantity,
	PromotionRuleTypeMinimumOrderValue,
	PromotionRuleTypeBuyXGetY,
	PromotionRuleTypeCategoryMix,
	PromotionRuleTypeNone,
}

// String implements fmt.Stringer.
func (p PromotionRuleType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PromotionRuleType.
func (p PromotionRuleType) IsValid() bool {
	for _, candidate := range validPromotionRuleTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePromotionRuleType converts raw input into a PromotionRuleType.
func ParsePromotionRuleType(value string) (PromotionRuleType, error) {
	for _, candidate := range validPromotionRuleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion rule type %q", value)
}
