package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Promotion is a row of the promotions table. Rules hold the tagged rule
// document decoded by the promotions engine.
type Promotion struct {
	ID                int64            `gorm:"column:id;primaryKey;autoIncrement"`
	PromotionName     string           `gorm:"column:promotion_name;not null"`
	Description       *string          `gorm:"column:description"`
	StartDate         time.Time        `gorm:"column:start_date;not null"`
	EndDate           time.Time        `gorm:"column:end_date;not null"`
	IsActive          bool             `gorm:"column:is_active;not null"`
	PromotionType     string           `gorm:"column:promotion_type;not null"`
	DiscountValue     *decimal.Decimal `gorm:"column:discount_value;type:numeric(12,2)"`
	MinimumOrderValue *decimal.Decimal `gorm:"column:minimum_order_value;type:numeric(12,2)"`
	Rules             json.RawMessage  `gorm:"column:rules;type:jsonb"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Promotion) TableName() string {
	return "promotions"
}
