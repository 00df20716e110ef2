package api

import (
	"log/slog"
	"net/http"
	"time"

	"customer-registry/internal/api/handler"
	mw "customer-registry/internal/api/middleware"
	"customer-registry/internal/config"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"

	_ "customer-registry/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func SetupRouter(customerService customer.CustomerService, addressService address.AddressService, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupCustomerRoutes(router, customerService, logger)
	setupAddressRoutes(router, addressService, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupCustomerRoutes(r chi.Router, svc customer.CustomerService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc, logger)

	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", h.ListCustomers)
		r.Post("/", h.CreateCustomer)
		r.Get("/search", h.SearchCustomers)
		r.Get("/search/advanced", h.SearchCustomersByAddress)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateCustomer)
			r.Delete("/", h.DeleteCustomer)
		})
	})
}

func setupAddressRoutes(r chi.Router, svc address.AddressService, logger *slog.Logger) {
	h := handler.NewAddressHandler(svc, logger)

	r.Route("/api/addresses", func(r chi.Router) {
		r.Get("/customer/{customerID}", h.ListAddresses)
		r.Post("/customer/{customerID}", h.CreateAddress)
		r.Route("/{addressID}", func(r chi.Router) {
			r.Get("/", h.GetAddress)
			r.Put("/", h.UpdateAddress)
			r.Delete("/", h.DeleteAddress)
		})
	})
}
