package main

import (
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foozbat/integrations-demo/internal/infra/http/handlers"
	"github.com/foozbat/integrations-demo/internal/infra/http/middleware"
)

type routeDeps struct {
	Leads          *handlers.LeadHandler
	CRMWebhook     *handlers.CRMWebhookHandler
	PaymentWebhook *handlers.PaymentWebhookHandler
	WorkflowError  *handlers.WorkflowErrorHandler
	Health         *handlers.HealthHandler
	SignupLimiter  middleware.Limiter
	AllowedOrigins []string
}

func newRouter(d routeDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Stripe-Signature", "X-Correlation-ID"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true, Timeout: 2 * time.Second}).Handle)
	r.Use(middleware.SentryTags)
	r.Use(middleware.Metrics)

	r.Get("/", d.Health.Handle)
	r.Get("/health", d.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/payment-success", handlers.PaymentSuccess)
	r.Get("/payment-cancelled", handlers.PaymentCancelled)

	r.Route("/api/users", func(r chi.Router) {
		r.With(middleware.RateLimit(d.SignupLimiter)).Post("/", d.Leads.Create)
		r.Get("/", d.Leads.List)
		r.Get("/{id}", d.Leads.Get)
		r.Patch("/{id}", d.Leads.Update)
		r.Delete("/{id}", d.Leads.Delete)
	})

	r.Route("/webhooks", func(r chi.Router) {
		r.Post("/hubspot", d.CRMWebhook.Handle)
		r.Post("/stripe", d.PaymentWebhook.Handle)
		r.Post("/logic-apps/error", d.WorkflowError.Handle)
	})

	return r
}
