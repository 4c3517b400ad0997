package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/zhaohz/homeseek/internal/middleware"
)

// NewRouter mounts the stub API under /api.
//
// Routes:
//
//	POST   /api/login                → Login
//	POST   /api/login/register       → Register
//	POST   /api/logout               → Logout
//	GET    /api/home/overview        → HomeOverview
//	GET    /api/home/me              → MyProfile
//	GET    /api/home/guess-you-like  → GuessYouLike
//	GET    /api/home/go-query        → QueryRecommendations
//	GET    /api/query                → SearchProperties
//	POST   /api/query/favorite       → AddFavorite
//	DELETE /api/query/favorite       → RemoveFavorite
//	POST   /api/profile/preferences  → SetPreferences
//	POST   /api/profile/price-predict→ PredictPrice
//	GET    /api/profile/history      → History
//	GET    /api/profile/favorites    → Favorites
func NewRouter(h *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Browser pages call this API cross-origin during development.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
	}))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/login/register", h.Register)
		r.Post("/logout", h.Logout)

		r.Route("/home", func(r chi.Router) {
			r.Get("/overview", h.HomeOverview)
			r.Get("/me", h.MyProfile)
			r.Get("/guess-you-like", h.GuessYouLike)
			r.Get("/go-query", h.QueryRecommendations)
		})

		r.Route("/query", func(r chi.Router) {
			r.Get("/", h.SearchProperties)
			r.Post("/favorite", h.AddFavorite)
			r.Delete("/favorite", h.RemoveFavorite)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Post("/preferences", h.SetPreferences)
			r.Post("/price-predict", h.PredictPrice)
			r.Get("/history", h.History)
			r.Get("/favorites", h.Favorites)
		})
	})

	return r
}
