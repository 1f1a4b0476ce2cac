package http

import (
	"net/http"
	"time"

	obsmw "loyalty/internal/observability/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	CORSOrigins  []string
	RateLimitRPM int
	TrustProxy   bool
}

func NewRouter(h *Handler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	if cfg.RateLimitRPM > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimitRPM, 1*time.Minute))
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(obsmw.WithRequestAndTrace)
	r.Use(obsmw.WithMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/login", h.loginUser)
		r.Post("/business/login", h.loginBusiness)
		r.Post("/auth/refresh", h.refresh)
		r.Post("/auth/logout", h.logout)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Post("/admin/unique-links", h.createBenefitLink)
			r.Post("/admin/unique-links/business", h.createBusinessLink)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireBusiness)
			r.Get("/business/me", h.businessMe)
		})

		// Public, token-gated partner routes. Everything under the
		// {token} segment goes through the gate.
		r.Route("/partner/upload/{token}", func(r chi.Router) {
			r.Use(h.withValidLink)
			r.Get("/validate", h.validateLink)
			r.Post("/benefit", h.uploadBenefit)
			r.Post("/business", h.uploadBusiness)
			r.Get("/businesses", h.listBusinesses)
		})

		r.Route("/business/upload/{token}", func(r chi.Router) {
			r.Use(h.withValidLink)
			r.Get("/validate", h.validateLink)
			r.Post("/register", h.registerBusiness)
			r.Get("/check-email/{email}", h.checkEmail)
		})
	})

	return r
}
