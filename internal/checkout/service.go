package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/promocheck/internal/catalog"
	"github.com/angelmondragon/promocheck/internal/promotions"
	"github.com/angelmondragon/promocheck/pkg/enums"
	pkgerrors "github.com/angelmondragon/promocheck/pkg/errors"
	"github.com/angelmondragon/promocheck/pkg/logger"
	"github.com/angelmondragon/promocheck/pkg/metrics"
)

// Service gates checkout on the promotions tagged in a cart.
type Service interface {
	Validate(ctx context.Context, lines []promotions.CartLine) (promotions.ValidationResult, error)
	Tips(ctx context.Context, lines []promotions.CartLine) ([]string, error)
}

// ServiceParams wires the checkout service.
type ServiceParams struct {
	Loader  catalog.Loader
	Metrics *metrics.PromotionMetrics
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	loader  catalog.Loader
	metrics *metrics.PromotionMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Loader == nil {
		return nil, fmt.Errorf("promotion loader required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		loader:  params.Loader,
		metrics: params.Metrics,
		logg:    logg,
		now:     now,
	}, nil
}

func (s *service) Validate(ctx context.Context, lines []promotions.CartLine) (promotions.ValidationResult, error) {
	started := s.now()
	promos, err := s.activePromotions(ctx, started)
	if err != nil {
		return promotions.ValidationResult{}, err
	}

	result := promotions.ValidateCart(lines, promos)
	s.record(result, s.now().Sub(started))

	outcome := enums.OutcomeFor(result.CanProceedToCheckout)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"outcome":          outcome.String(),
		"is_valid":         result.IsValid,
		"line_count":       len(lines),
		"promotion_count":  len(promos),
		"message_count":    len(result.Messages),
		"suggestion_count": len(result.Suggestions),
	})
	s.logg.Info(ctx, "cart promotions validated")
	for _, msg := range result.Messages {
		if msg.Type == enums.PromotionMessageTypeWarning || msg.Type == enums.PromotionMessageTypeError {
			s.logg.Debug(s.logg.WithPromotionID(ctx, int64(msg.PromotionID)), "promotion requirement unmet")
		}
	}
	return result, nil
}

func (s *service) Tips(ctx context.Context, lines []promotions.CartLine) ([]string, error) {
	promos, err := s.activePromotions(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return promotions.GenerateTips(promos, lines), nil
}

func (s *service) activePromotions(ctx context.Context, now time.Time) ([]promotions.Promotion, error) {
	promos, err := s.loader.ListActive(ctx, now)
	if err != nil {
		s.logg.Error(ctx, "loading active promotions failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active promotions")
	}
	return promos, nil
}

func (s *service) record(result promotions.ValidationResult, elapsed time.Duration) {
	s.metrics.IncValidation(enums.OutcomeFor(result.CanProceedToCheckout).String())
	s.metrics.ObserveDuration(elapsed)

	counts := map[enums.PromotionMessageType]int{}
	for _, msg := range result.Messages {
		counts[msg.Type]++
	}
	for msgType, count := range counts {
		s.metrics.AddMessages(msgType.String(), count)
	}
}
