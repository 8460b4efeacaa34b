package promotions

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/promocheck/pkg/enums"
)

const currencySymbol = "R"

// EvaluateGroup checks one promotion against the cart lines tagged with it.
func EvaluateGroup(promo Promotion, lines []CartLine) ValidationResult {
	if ruleIsNone(promo.Rules) {
		return newResult()
	}
	return promo.Rules.evaluate(promo, lines)
}

func (r MinimumQuantityRule) evaluate(promo Promotion, lines []CartLine) ValidationResult {
	result := newResult()
	minQuantity := r.Minimum()
	total := totalQuantity(lines)

	if total < minQuantity {
		needed := minQuantity - total
		result.IsValid = false
		result.CanProceedToCheckout = false
		result.Messages = append(result.Messages, newMessage(promo, enums.PromotionMessageTypeWarning,
			fmt.Sprintf("Add %d more %s from %s to qualify for the promotion", needed, pluralize(needed, "item"), promo.PromotionName)))
		result.Suggestions = append(result.Suggestions, Suggestion{
			Type:       enums.PromotionSuggestionTypeAddMore,
			Message:    fmt.Sprintf("Add %d more %s to unlock %s", needed, pluralize(needed, "item"), promo.PromotionName),
			ActionText: "Add more items",
			Data: map[string]any{
				"promotion_id": promo.ID,
				"needed":       needed,
				"min_quantity": minQuantity,
			},
		})
		return result
	}

	result.Messages = append(result.Messages, newMessage(promo, enums.PromotionMessageTypeSuccess,
		fmt.Sprintf("You have %d %s from %s and qualify for the promotion", total, pluralize(total, "item"), promo.PromotionName)))
	return result
}

// A shortfall withholds the discount but never blocks checkout.
func (r MinimumOrderValueRule) evaluate(promo Promotion, lines []CartLine) ValidationResult {
	result := newResult()
	minValue := r.Minimum()
	total := totalValue(lines)

	if total.LessThan(minValue) {
		deficit := minValue.Sub(total)
		result.Messages = append(result.Messages, newMessage(promo, enums.PromotionMessageTypeWarning,
			fmt.Sprintf("Spend %s more on %s to qualify for the promotion", formatMoney(deficit), promo.PromotionName)))
		result.Suggestions = append(result.Suggestions, Suggestion{
			Type:       enums.PromotionSuggestionTypeAddMore,
			Message:    fmt.Sprintf("Add %s worth of items to unlock %s", formatMoney(deficit), promo.PromotionName),
			ActionText: "Continue shopping",
			Data: map[string]any{
				"promotion_id": promo.ID,
				"needed":       deficit.StringFixed(2),
				"min_value":    minValue.StringFixed(2),
			},
		})
		return result
	}

	result.Messages = append(result.Messages, newMessage(promo, enums.PromotionMessageTypeSuccess,
		fmt.Sprintf("Your order of %s qualifies for %s", formatMoney(total), promo.PromotionName)))
	return result
}

func (r BuyXGetYRule) evaluate(promo Promotion, lines []CartLine) ValidationResult {
	result := newResult()
	buy, get := r.Buy(), r.Get()
	required := r.SetSize()
	total := totalQuantity(lines)

	if total < required {
		needed := required - total
		result.IsValid = false
		result.CanProceedToCheckout = false
		result.Messages = append(result.Messages, newMessage(promo, enums.PromotionMessageTypeWarning,
			fmt.Sprintf("Add %d more %s from %s to complete Buy %d Get %d", needed, pluralize(needed, "item"), promo.PromotionName, buy, get)))
		result.Suggestions = append(result.Suggestions, Suggestion{
			Type:       enums.PromotionSuggestionTypeAddMore,
			Message:    fmt.Sprintf("Add %d more %s to get %d free", needed, pluralize(needed, "item"), get),
			ActionText: "Add more items",
			Data: map[string]any{
				"promotion_id":   promo.ID,
				"needed":         needed,
				"total_required": required,
				"buy_quantity":   buy,
				"get_quantity":   get,
			},
		})
		return result
	}

	free := FreeItems(total, buy, get)
	result.Messages = append(result.Messages, newMessage(promo, enums.PromotionMessageTypeSuccess,
		fmt.Sprintf("Buy %d Get %d applied on %s: you get %d free %s!", buy, get, promo.PromotionName, free, pluralize(free, "item"))))
	return result
}

// FreeItems counts the free units earned by complete sets only.
func FreeItems(totalQuantity, buy, get int) int {
	setSize := buy + get
	if setSize <= 0 || totalQuantity < setSize {
		return 0
	}
	return (totalQuantity / setSize) * get
}

// TODO: match line categories against RequiredCategories once the catalog
// service exposes category membership per product.
func (r CategoryMixRule) evaluate(promo Promotion, _ []CartLine) ValidationResult {
	result := newResult()
	message := fmt.Sprintf("Mix at least %d %s from each required category (%d in total) to qualify for %s",
		r.FromEach(), pluralize(r.FromEach(), "item"), r.Total(), promo.PromotionName)
	if categories := r.Categories(); len(categories) > 0 {
		message = fmt.Sprintf("%s: %s", message, strings.Join(categories, ", "))
	}
	result.Messages = append(result.Messages, newMessage(promo, enums.PromotionMessageTypeInfo, message))
	return result
}

func newMessage(promo Promotion, msgType enums.PromotionMessageType, text string) Message {
	return Message{
		Type:          msgType,
		Message:       text,
		PromotionName: promo.PromotionName,
		PromotionID:   promo.ID,
	}
}

func totalQuantity(lines []CartLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

func totalValue(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.ItemPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func formatMoney(amount decimal.Decimal) string {
	return currencySymbol + amount.StringFixed(2)
}

func pluralize(count int, noun string) string {
	if count == 1 {
		return noun
	}
	return noun + "s"
}
