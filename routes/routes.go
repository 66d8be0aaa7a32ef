package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jamalben22/stadiumport/handlers"
	"github.com/jamalben22/stadiumport/middleware"
)

// SetupRoutes mounts the public API, the websocket endpoint and the
// admin-only group on the given router.
func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	bracketHandler *handlers.BracketHandler,
	predictionHandler *handlers.PredictionHandler,
	teamHandler *handlers.TeamHandler,
	contactHandler *handlers.ContactHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.LoginHandler)

		r.Route("/brackets", func(r chi.Router) {
			r.Post("/", bracketHandler.StartSessionHandler)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", bracketHandler.GetStateHandler)
				r.Get("/summary", bracketHandler.SummaryHandler)
				r.Post("/picks", bracketHandler.RecordWinnerHandler)
				r.Delete("/picks", bracketHandler.ClearPicksHandler)
				r.Post("/save", bracketHandler.SavePredictionHandler)
			})
		})

		r.Get("/predictions/{publicID}", predictionHandler.GetPredictionHandler)
		r.Get("/teams", teamHandler.ListTeamsHandler)
		r.Post("/contact", contactHandler.SubmitHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize("admin"))

			r.Get("/predictions", predictionHandler.ListRecentHandler)
			r.Put("/teams/{teamID}/flag", teamHandler.UploadFlagHandler)
		})
	})

	router.Get("/ws/brackets/{sessionID}", webSocketHandler.ServeSessionHandler)
}
