package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baharkarakas/staybook/internal/api/handlers"
	"github.com/baharkarakas/staybook/internal/api/httpx"
	"github.com/baharkarakas/staybook/internal/config"
	"github.com/baharkarakas/staybook/internal/middleware"
	"github.com/baharkarakas/staybook/internal/services"
)

func NewRouter(cfg config.Config, log *slog.Logger, ps *services.PaymentService, bs *services.BookingService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(log), middleware.Recover, middleware.HTTPMetrics, middleware.AccessLog, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	routes := mountRoutes(handlers.NewPaymentHandler(ps), handlers.NewBookingHandler(bs))
	r.Group(routes)
	r.Route("/api/v1", routes)

	return r
}

// mountRoutes registers every path with and without the trailing slash the
// original clients use.
func mountRoutes(ph *handlers.PaymentHandler, bh *handlers.BookingHandler) func(chi.Router) {
	both := func(reg func(string, http.HandlerFunc), path string, h http.HandlerFunc) {
		reg(path, h)
		reg(path+"/", h)
	}
	return func(r chi.Router) {
		// ---------- payments ----------
		both(r.Post, "/payments/initiate", ph.Initiate)
		both(r.Get, "/payments/verify", ph.Verify)
		// keep GET /payments/initiate out of the {txRef} lookup
		both(r.Get, "/payments/initiate", httpx.MethodNotAllowed(http.MethodPost))
		r.Get("/payments/{txRef}", ph.Get)

		// ---------- bookings ----------
		both(r.Post, "/bookings", bh.Create)
		both(r.Get, "/bookings", bh.List)
		both(r.Get, "/bookings/{id}", bh.Get)
		both(r.Patch, "/bookings/{id}", bh.UpdateStatus)
		both(r.Delete, "/bookings/{id}", bh.Delete)
		r.Get("/bookings/{id}/payments", ph.ListForBooking)
	}
}
