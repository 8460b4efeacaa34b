package promotions

import "fmt"

// GenerateTips returns one marketing line per active promotion whose rule has
// a tip template. Cart lines are accepted for callers that render tips next
// to the cart; the current templates do not depend on them.
func GenerateTips(promos []Promotion, _ []CartLine) []string {
	tips := []string{}
	for _, promo := range promos {
		if !promo.IsActive || ruleIsNone(promo.Rules) {
			continue
		}
		if tip, ok := promo.Rules.tip(promo.PromotionName); ok {
			tips = append(tips, tip)
		}
	}
	return tips
}

func (r MinimumQuantityRule) tip(name string) (string, bool) {
	return fmt.Sprintf("Add %d items from %s to get the special pricing!", r.Minimum(), name), true
}

func (r BuyXGetYRule) tip(name string) (string, bool) {
	return fmt.Sprintf("Buy %d items and get %d free in %s!", r.Buy(), r.Get(), name), true
}

func (r MinimumOrderValueRule) tip(name string) (string, bool) {
	return fmt.Sprintf("Spend %s or more to qualify for %s!", formatMoney(r.Minimum()), name), true
}

func (CategoryMixRule) tip(string) (string, bool) {
	return "", false
}
