package promotions

import (
	"maps"
	"slices"
)

// ValidateCart evaluates every promotion group in the cart and folds the
// partial results into one verdict. Groups whose promotion is unknown or has
// no rules are skipped.
func ValidateCart(lines []CartLine, promos []Promotion) ValidationResult {
	result := newResult()
	groups := GroupByPromotion(lines)
	if len(groups) == 0 {
		return result
	}

	index := indexPromotions(promos)
	for _, id := range slices.Sorted(maps.Keys(groups)) {
		promo, ok := index[id]
		if !ok || promo.Rules == nil {
			continue
		}

		partial := EvaluateGroup(promo, groups[id])
		result.Messages = append(result.Messages, partial.Messages...)
		result.Suggestions = append(result.Suggestions, partial.Suggestions...)
		if !partial.CanProceedToCheckout {
			result.CanProceedToCheckout = false
		}
	}

	result.IsValid = !result.HasErrors()
	return result
}

// indexPromotions keys promotions by id; the first entry wins on duplicates.
func indexPromotions(promos []Promotion) map[PromotionID]Promotion {
	index := make(map[PromotionID]Promotion, len(promos))
	for _, promo := range promos {
		if _, exists := index[promo.ID]; exists {
			continue
		}
		index[promo.ID] = promo
	}
	return index
}
