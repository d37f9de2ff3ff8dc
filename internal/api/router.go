package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(apiHandler *APIHandler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/session", apiHandler.SessionHandler)
		r.Post("/login", apiHandler.LoginHandler)
		r.Post("/signup", apiHandler.SignupHandler)
		r.Post("/logout", apiHandler.LogoutHandler)
		r.Post("/identify", apiHandler.IdentifyHandler)
		r.Get("/community", apiHandler.CommunityHandler)

		// Routes for the signed-in user
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)

			r.Get("/quota", apiHandler.QuotaHandler)
			r.Post("/redesigns", apiHandler.RedesignHandler)

			r.Get("/favorites", apiHandler.ListFavoritesHandler)
			r.Post("/favorites", apiHandler.CreateFavoriteHandler)
			r.Patch("/favorites/{favoriteID}", apiHandler.UpdateFavoriteHandler)
			r.Delete("/favorites/{favoriteID}", apiHandler.DeleteFavoriteHandler)
			r.Post("/favorites/{favoriteID}/like", apiHandler.ToggleLikeHandler)

			r.Get("/following", apiHandler.FollowingHandler)
			r.Post("/following/{username}", apiHandler.ToggleFollowHandler)
			r.Get("/profiles/{username}", apiHandler.ProfileHandler)
		})
	})

	return r
}
