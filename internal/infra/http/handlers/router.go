package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/lead-outreach/internal/infra/http/middleware"
)

type RouterDeps struct {
	AllowedOrigins []string
	Health         *HealthHandler
	Contacts       *ContactHandler
	Outreach       *OutreachHandler
	EmailLogs      *EmailLogHandler
	CaptureLimiter *RateLimiter
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", d.Health.Handle)

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", d.Contacts.List)
			r.With(limit(d.CaptureLimiter)).Post("/", d.Contacts.Create)
			r.Get("/{id}", d.Contacts.Get)
			r.Put("/{id}", d.Contacts.Update)
			r.Delete("/{id}", d.Contacts.Delete)
			r.Post("/{id}/send-email", d.Outreach.SendEmail)
		})

		r.Post("/send-bulk-emails", d.Outreach.SendBulk)
		r.Get("/follow-ups", d.Outreach.ListFollowUps)
		r.Post("/send-follow-ups", d.Outreach.SendFollowUps)

		r.Get("/email-logs", d.EmailLogs.List)
		r.Get("/email-stats", d.EmailLogs.Stats)
	})

	return r
}

func limit(rl *RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}
