package controllers

import (
	"net/http"

	"github.com/angelmondragon/promocheck/api/responses"
	"github.com/angelmondragon/promocheck/api/validators"
	"github.com/angelmondragon/promocheck/internal/checkout"
	"github.com/angelmondragon/promocheck/internal/promotions"
	"github.com/angelmondragon/promocheck/pkg/logger"
)

type cartPromotionsRequest struct {
	Items []promotions.CartLine `json:"items" validate:"required,dive"`
}

type tipsResponse struct {
	Tips []string `json:"tips"`
}

// ValidateCartPromotions returns the checkout verdict for the posted cart.
func ValidateCartPromotions(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartPromotionsRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Validate(r.Context(), req.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// PromotionTips returns merchandising lines for the running promotions.
func PromotionTips(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartPromotionsRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tips, err := svc.Tips(r.Context(), req.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tipsResponse{Tips: tips})
	}
}
