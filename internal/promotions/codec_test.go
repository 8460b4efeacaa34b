package promotions

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRuleVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, rule Rule)
	}{
		{
			name: "minimum quantity",
			raw:  `{"type":"minimum_quantity_same_promotion","minimum_quantity":4}`,
			check: func(t *testing.T, rule Rule) {
				r, ok := rule.(MinimumQuantityRule)
				require.True(t, ok)
				assert.Equal(t, 4, r.Minimum())
			},
		},
		{
			name: "minimum quantity as string",
			raw:  `{"type":"minimum_quantity_same_promotion","minimum_quantity":" 6 "}`,
			check: func(t *testing.T, rule Rule) {
				assert.Equal(t, 6, rule.(MinimumQuantityRule).Minimum())
			},
		},
		{
			name: "malformed quantity falls back",
			raw:  `{"type":"minimum_quantity_same_promotion","minimum_quantity":"lots"}`,
			check: func(t *testing.T, rule Rule) {
				assert.Equal(t, DefaultMinimumQuantity, rule.(MinimumQuantityRule).Minimum())
			},
		},
		{
			name: "order value string",
			raw:  `{"type":"minimum_order_value","minimum_value":"499.90"}`,
			check: func(t *testing.T, rule Rule) {
				assert.Equal(t, "499.90", rule.(MinimumOrderValueRule).Minimum().StringFixed(2))
			},
		},
		{
			name: "order value missing",
			raw:  `{"type":"minimum_order_value"}`,
			check: func(t *testing.T, rule Rule) {
				assert.True(t, rule.(MinimumOrderValueRule).Minimum().Equal(DefaultMinimumValue))
			},
		},
		{
			name: "buy x get y",
			raw:  `{"type":"buy_x_get_y","buy_quantity":3,"get_quantity":2,"get_discount_type":"percentage","get_discount_value":50,"apply_to_lowest_price":true}`,
			check: func(t *testing.T, rule Rule) {
				r := rule.(BuyXGetYRule)
				assert.Equal(t, 5, r.SetSize())
				require.NotNil(t, r.GetDiscountType)
				assert.Equal(t, "percentage", *r.GetDiscountType)
				require.NotNil(t, r.ApplyToLowestPrice)
				assert.True(t, *r.ApplyToLowestPrice)
			},
		},
		{
			name: "category mix defaults",
			raw:  `{"type":"category_mix"}`,
			check: func(t *testing.T, rule Rule) {
				r := rule.(CategoryMixRule)
				assert.Equal(t, DefaultMinimumFromEach, r.FromEach())
				assert.Equal(t, DefaultTotalMinimum, r.Total())
				assert.Empty(t, r.Categories())
			},
		},
		{
			name: "unknown type",
			raw:  `{"type":"loyalty_tier"}`,
			check: func(t *testing.T, rule Rule) {
				assert.Equal(t, NoRule{}, rule)
			},
		},
		{
			name: "null",
			raw:  `null`,
			check: func(t *testing.T, rule Rule) {
				assert.Nil(t, rule)
			},
		},
		{
			name: "not an object",
			raw:  `[1,2]`,
			check: func(t *testing.T, rule Rule) {
				assert.Nil(t, rule)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, DecodeRule([]byte(tt.raw)))
		})
	}
}

func TestPromotionJSONKeepsRules(t *testing.T) {
	t.Parallel()

	description := "weekend only"
	original := Promotion{
		ID:            42,
		PromotionName: "Weekend Trio",
		Description:   &description,
		StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
		PromotionType: "bundle",
		Rules:         BuyXGetYRule{BuyQuantity: intPtr(2), GetQuantity: intPtr(1)},
	}

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Promotion
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.PromotionName, decoded.PromotionName)
	assert.True(t, original.EndDate.Equal(decoded.EndDate))
	rule, ok := decoded.Rules.(BuyXGetYRule)
	require.True(t, ok)
	assert.Equal(t, 2, rule.Buy())
	assert.Equal(t, 1, rule.Get())

	var withoutRules Promotion
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"promotion_name":"x"}`), &withoutRules))
	assert.Nil(t, withoutRules.Rules)
}
