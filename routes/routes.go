package routes

import (
	_ "embed"
	"net/http"

	"github.com/Dosada05/beach-tournament/handlers"
	"github.com/Dosada05/beach-tournament/middleware"
	"github.com/Dosada05/beach-tournament/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed swagger.json
var swaggerDoc []byte

type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Tournament *handlers.TournamentHandler
	Athlete    *handlers.AthleteHandler
	Team       *handlers.TeamHandler
	Ranking    *handlers.RankingHandler
	WebSocket  *handlers.WebSocketHandler
}

// SetupRoutes mounts the public read API and the organizer-only write API.
func SetupRoutes(router chi.Router, h Handlers, jwtSecret []byte, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", h.Health.Check)
	router.Get("/ws", h.WebSocket.ServeWs)

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(swaggerDoc)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Post("/auth/login", h.Auth.Login)

	router.Get("/trophies", h.Athlete.CatalogHandler)

	router.Route("/tournament", func(r chi.Router) {
		r.Get("/", h.Tournament.GetHandler)
		r.Get("/groups/{index}/standings", h.Tournament.GroupStandingsHandler)
		r.Get("/bracket", h.Tournament.BracketHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.RoleOrganizer))

			r.Put("/config", h.Tournament.UpdateConfigHandler)
			r.Post("/start", h.Tournament.StartHandler)
			r.Post("/advance", h.Tournament.AdvanceHandler)
			r.Post("/reset", h.Tournament.ResetHandler)
		})
	})

	router.Route("/athletes", func(r chi.Router) {
		r.Get("/", h.Athlete.ListHandler)
		r.Get("/{athleteID}", h.Athlete.GetHandler)
		r.Get("/{athleteID}/trophies", h.Athlete.TrophiesHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.RoleOrganizer))

			r.Post("/", h.Athlete.CreateHandler)
			r.Delete("/{athleteID}", h.Athlete.DeleteHandler)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize(models.RoleOrganizer))

		r.Post("/", h.Team.CreateHandler)
		r.Delete("/{teamID}", h.Team.DeleteHandler)
	})

	router.Route("/matches/{matchID}", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize(models.RoleOrganizer))

		r.Post("/result", h.Tournament.SubmitResultHandler)
		r.Post("/simulate", h.Tournament.SimulateHandler)
	})

	router.Route("/ranking", func(r chi.Router) {
		r.Get("/", h.Ranking.ListHandler)
		r.Get("/top", h.Ranking.TopHandler)
	})
}
