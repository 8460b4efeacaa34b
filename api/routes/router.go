package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/promocheck/api/controllers"
	"github.com/angelmondragon/promocheck/api/middleware"
	"github.com/angelmondragon/promocheck/api/responses"
	"github.com/angelmondragon/promocheck/internal/checkout"
	"github.com/angelmondragon/promocheck/pkg/config"
	pkgerrors "github.com/angelmondragon/promocheck/pkg/errors"
	"github.com/angelmondragon/promocheck/pkg/logger"
)

// Params collects the dependencies served over HTTP. RedisPinger is nil when
// no cache is configured.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger
	Checkout    checkout.Service
	Gatherer    prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	logg := p.Logger
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, "method not allowed"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, logg, p.DBPinger, p.RedisPinger))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/cart/promotions", func(r chi.Router) {
		r.Post("/validate", controllers.ValidateCartPromotions(p.Checkout, logg))
		r.Post("/tips", controllers.PromotionTips(p.Checkout, logg))
	})

	return r
}
