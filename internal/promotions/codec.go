package promotions

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/promocheck/pkg/enums"
)

// ruleDocument is the stored JSON shape of a rule, tagged by type.
type ruleDocument struct {
	Type               enums.PromotionRuleType `json:"type"`
	MinimumQuantity    *int                    `json:"minimum_quantity,omitempty"`
	MinimumValue       *decimal.Decimal        `json:"minimum_value,omitempty"`
	BuyQuantity        *int                    `json:"buy_quantity,omitempty"`
	GetQuantity        *int                    `json:"get_quantity,omitempty"`
	GetDiscountType    *string                 `json:"get_discount_type,omitempty"`
	GetDiscountValue   *decimal.Decimal        `json:"get_discount_value,omitempty"`
	ApplyToLowestPrice *bool                   `json:"apply_to_lowest_price,omitempty"`
	MinimumFromEach    *int                    `json:"minimum_from_each,omitempty"`
	TotalMinimum       *int                    `json:"total_minimum,omitempty"`
	RequiredCategories []string                `json:"required_categories,omitempty"`
}

// EncodeRule renders a rule as tagged JSON. A nil rule encodes as null.
func EncodeRule(rule Rule) ([]byte, error) {
	if rule == nil {
		return []byte("null"), nil
	}
	doc := ruleDocument{Type: rule.Type()}
	switch r := rule.(type) {
	case MinimumQuantityRule:
		doc.MinimumQuantity = r.MinimumQuantity
	case MinimumOrderValueRule:
		doc.MinimumValue = r.MinimumValue
	case BuyXGetYRule:
		doc.BuyQuantity = r.BuyQuantity
		doc.GetQuantity = r.GetQuantity
		doc.GetDiscountType = r.GetDiscountType
		doc.GetDiscountValue = r.GetDiscountValue
		doc.ApplyToLowestPrice = r.ApplyToLowestPrice
	case CategoryMixRule:
		doc.MinimumFromEach = r.MinimumFromEach
		doc.TotalMinimum = r.TotalMinimum
		doc.RequiredCategories = r.RequiredCategories
	}
	return json.Marshal(doc)
}

// DecodeRule reads a tagged rule. It never fails: empty input or a value that
// is not a JSON object yields nil (no rules), an unknown type yields NoRule,
// and malformed numeric fields are left unset so defaults apply.
func DecodeRule(raw []byte) Rule {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil
	}

	ruleType, _ := enums.ParsePromotionRuleType(stringField(fields, "type"))
	switch ruleType {
	case enums.PromotionRuleTypeMinimumQuantity:
		return MinimumQuantityRule{MinimumQuantity: intField(fields, "minimum_quantity")}
	case enums.PromotionRuleTypeMinimumOrderValue:
		return MinimumOrderValueRule{MinimumValue: decimalField(fields, "minimum_value")}
	case enums.PromotionRuleTypeBuyXGetY:
		rule := BuyXGetYRule{
			BuyQuantity:      intField(fields, "buy_quantity"),
			GetQuantity:      intField(fields, "get_quantity"),
			GetDiscountValue: decimalField(fields, "get_discount_value"),
		}
		if discountType := stringField(fields, "get_discount_type"); discountType != "" {
			rule.GetDiscountType = &discountType
		}
		if raw, ok := fields["apply_to_lowest_price"]; ok {
			var lowest bool
			if err := json.Unmarshal(raw, &lowest); err == nil {
				rule.ApplyToLowestPrice = &lowest
			}
		}
		return rule
	case enums.PromotionRuleTypeCategoryMix:
		rule := CategoryMixRule{
			MinimumFromEach: intField(fields, "minimum_from_each"),
			TotalMinimum:    intField(fields, "total_minimum"),
		}
		if raw, ok := fields["required_categories"]; ok {
			var categories []string
			if err := json.Unmarshal(raw, &categories); err == nil {
				rule.RequiredCategories = categories
			}
		}
		return rule
	default:
		return NoRule{}
	}
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// intField accepts whole JSON numbers and numeric strings.
func intField(fields map[string]json.RawMessage, key string) *int {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil
		}
		n := int(v)
		return &n
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}

func decimalField(fields map[string]json.RawMessage, key string) *decimal.Decimal {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	var value decimal.Decimal
	if err := value.UnmarshalJSON(raw); err != nil {
		return nil
	}
	return &value
}

type promotionDocument struct {
	ID                PromotionID      `json:"id"`
	PromotionName     string           `json:"promotion_name"`
	Description       *string          `json:"description,omitempty"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	IsActive          bool             `json:"is_active"`
	PromotionType     string           `json:"promotion_type"`
	DiscountValue     *decimal.Decimal `json:"discount_value,omitempty"`
	MinimumOrderValue *decimal.Decimal `json:"minimum_order_value,omitempty"`
	Rules             json.RawMessage  `json:"rules,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p Promotion) MarshalJSON() ([]byte, error) {
	doc := promotionDocument{
		ID:                p.ID,
		PromotionName:     p.PromotionName,
		Description:       p.Description,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		IsActive:          p.IsActive,
		PromotionType:     p.PromotionType,
		DiscountValue:     p.DiscountValue,
		MinimumOrderValue: p.MinimumOrderValue,
	}
	if p.Rules != nil {
		rules, err := EncodeRule(p.Rules)
		if err != nil {
			return nil, err
		}
		doc.Rules = rules
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Promotion) UnmarshalJSON(data []byte) error {
	var doc promotionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*p = Promotion{
		ID:                doc.ID,
		PromotionName:     doc.PromotionName,
		Description:       doc.Description,
		StartDate:         doc.StartDate,
		EndDate:           doc.EndDate,
		IsActive:          doc.IsActive,
		PromotionType:     doc.PromotionType,
		DiscountValue:     doc.DiscountValue,
		MinimumOrderValue: doc.MinimumOrderValue,
		Rules:             DecodeRule(doc.Rules),
	}
	return nil
}
