package routes

import (
	"github.com/GiorgiUbiria/skill_swap/internal/handlers"
	"github.com/GiorgiUbiria/skill_swap/internal/metrics"
	appmw "github.com/GiorgiUbiria/skill_swap/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GiorgiUbiria/skill_swap/docs"
)

func NewRoutes(h *handlers.Handler, tokens appmw.TokenVerifier, limiter *appmw.RateLimiter) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	authed := appmw.Authenticated(tokens)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limiter.Handler).Post("/register", h.Register)
			r.With(limiter.Handler).Post("/login", h.Login)
			r.With(authed).Get("/me", h.Me)
			r.With(authed).Patch("/update", h.UpdateProfile)
		})

		r.Route("/posts", func(r chi.Router) {
			r.With(appmw.OptionalAuth(tokens)).Get("/", h.ListPosts)
			r.With(authed).Post("/", h.CreatePost)
			r.With(authed).Get("/my-posts", h.MyPosts)
			r.Get("/{id}", h.GetPost)
			r.With(authed).Delete("/{id}", h.DeletePost)
		})

		r.Route("/swaps", func(r chi.Router) {
			r.Use(authed)
			r.Post("/request", h.RequestSwap)
			r.Get("/my-swaps", h.MySwaps)
			r.Get("/{id}", h.GetSwap)
			r.Get("/{id}/ledger", h.SwapLedger)
			r.Put("/{id}/status", h.UpdateSwapStatus)
			r.Post("/{id}/complete", h.CompleteSwap)
		})
	})

	return r
}
