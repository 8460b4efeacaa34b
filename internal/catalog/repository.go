package catalog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/promocheck/internal/promotions"
	"github.com/angelmondragon/promocheck/pkg/db/models"
)

// Loader returns the promotions running at a point in time.
type Loader interface {
	ListActive(ctx context.Context, now time.Time) ([]promotions.Promotion, error)
}

// SnapshotSource can also list promotions that have not ended yet, including
// ones scheduled to start later. A cached snapshot built from it stays correct
// when a promotion starts inside the cache TTL.
type SnapshotSource interface {
	Loader
	ListUnexpired(ctx context.Context, now time.Time) ([]promotions.Promotion, error)
}

// Repository reads promotions from the promotions table.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListActive returns enabled promotions whose date window contains now, ordered by id.
func (r *Repository) ListActive(ctx context.Context, now time.Time) ([]promotions.Promotion, error) {
	now = now.UTC()
	var rows []models.Promotion
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list active promotions: %w", err)
	}
	return toPromotions(rows), nil
}

// ListUnexpired returns enabled promotions whose end_date is not before now,
// running or upcoming, ordered by id.
func (r *Repository) ListUnexpired(ctx context.Context, now time.Time) ([]promotions.Promotion, error) {
	var rows []models.Promotion
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("end_date >= ?", now.UTC()).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list unexpired promotions: %w", err)
	}
	return toPromotions(rows), nil
}

func toPromotions(rows []models.Promotion) []promotions.Promotion {
	out := make([]promotions.Promotion, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToPromotion(row))
	}
	return out
}

// Create inserts a promotion row.
func (r *Repository) Create(ctx context.Context, promo *models.Promotion) error {
	if promo == nil {
		return fmt.Errorf("promotion is required")
	}
	if promo.EndDate.Before(promo.StartDate) {
		return fmt.Errorf("promotion %q ends before it starts", promo.PromotionName)
	}
	if err := r.db.WithContext(ctx).Create(promo).Error; err != nil {
		return fmt.Errorf("create promotion: %w", err)
	}
	return nil
}

// ToPromotion converts a stored row into the engine's read-only snapshot.
func ToPromotion(row models.Promotion) promotions.Promotion {
	return promotions.Promotion{
		ID:                promotions.PromotionID(row.ID),
		PromotionName:     row.PromotionName,
		Description:       row.Description,
		StartDate:         row.StartDate.UTC(),
		EndDate:           row.EndDate.UTC(),
		IsActive:          row.IsActive,
		PromotionType:     row.PromotionType,
		DiscountValue:     row.DiscountValue,
		MinimumOrderValue: row.MinimumOrderValue,
		Rules:             promotions.DecodeRule(row.Rules),
	}
}

// runningAt reports whether the promotion is enabled and its window contains now.
func runningAt(promo promotions.Promotion, now time.Time) bool {
	if !promo.IsActive {
		return false
	}
	return !now.Before(promo.StartDate) && !now.After(promo.EndDate)
}
