package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/adivinatobi/adivinatobi/backend/internal/setup"
	"github.com/adivinatobi/adivinatobi/shared/metrics"
	mw "github.com/adivinatobi/adivinatobi/shared/middleware"
)

// New creates and configures a new chi router with all the routes.
// Reads are never rate limited; every mutation under /v1 shares one bucket per client IP.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	httpCfg := deps.Config.Public.Http

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLog)
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(httpCfg.HSTS))

	if len(httpCfg.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: httpCfg.CorsOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}

	h := deps.Handler

	clientIP := mw.GetIP
	if httpCfg.TrustProxyHeaders {
		clientIP = mw.GetProxiedIP
	}

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(mw.MutationsOnly(mw.RateLimit(deps.RateLimiter, clientIP)))

		v1.Route("/threads", func(threads chi.Router) {
			threads.Get("/", h.ListThreads)
			threads.Post("/", h.CreateThread)

			threads.Route("/{thread}", func(thread chi.Router) {
				thread.Get("/", h.GetThread)
				thread.Delete("/", h.DeleteThread)
				thread.Post("/close", h.CloseThread)
				thread.Post("/void", h.VoidThread)
				thread.Get("/qr.png", h.ThreadQR)
				thread.Post("/predictions", h.CreatePrediction)
			})
		})

		v1.Put("/predictions/{prediction}", h.EditPrediction)
		v1.Delete("/predictions/{prediction}", h.DeletePrediction)

		v1.Get("/leaderboard", h.GetLeaderboard)

		v1.Get("/users", h.ListUsers)
		v1.Post("/users", h.RegisterUser)
		v1.Delete("/users/{name}", h.RemoveUser)
	})

	return r
}
