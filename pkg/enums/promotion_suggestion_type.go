package enums

import "fmt"

// PromotionSuggestionType enumerates the cart actions suggested to shoppers.
type PromotionSuggestionType string

const (
	PromotionSuggestionTypeAddMore        PromotionSuggestionType = "add_more"
	PromotionSuggestionTypeRemoveItems    PromotionSuggestionType = "remove_items"
	PromotionSuggestionTypeChangeQuantity PromotionSuggestionType = "change_quantity"
	PromotionSuggestionTypeSelectCategory PromotionSuggestionType = "select_category"
)

var validPromotionSuggestionTypes = []PromotionSuggestionType{
	PromotionSuggestionTypeAddMore,
	PromotionSuggestionTypeRemoveItems,
	PromotionSuggestionTypeChangeQuantity,
	PromotionSuggestionTypeSelectCategory,
}

func (p PromotionSuggestionType) String() string {
	return string(p)
}

func (p PromotionSuggestionType) IsValid() bool {
	for _, candidate := range validPromotionSuggestionTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePromotionSuggestionType converts raw input into a PromotionSuggestionType.
func ParsePromotionSuggestionType(value string) (PromotionSuggestionType, error) {
	for _, candidate := range validPromotionSuggestionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion suggestion type %q", value)
}
