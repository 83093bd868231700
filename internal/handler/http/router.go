package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/shriajj/roster-backend-go/internal/handler/http/middleware"
	"github.com/shriajj/roster-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth      AuthHandler
	Roster    RosterHandler
	Directory DirectoryHandler
	Export    ExportHandler
	Meta      MetaHandler
	Events    EventsHandler
}

func NewRouter(logger *slog.Logger, jwtService jwt.Service, h Handlers, staticDir string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:8080"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	// Unauthenticated surface: the app shell plus what it needs to boot.
	r.Get("/api/config", h.Meta.Config)
	r.Get("/api/health", h.Meta.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// The event stream authenticates via a short-lived query-string
		// token instead of the Authorization header.
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/sse-token", h.Auth.SSEToken)

			r.Route("/rosters/{weekKey}", func(r chi.Router) {
				r.Get("/", h.Roster.GetWeek)
				r.Put("/", h.Roster.SaveWeek)
				r.Post("/shifts", h.Roster.UpsertShift)
				r.Delete("/shifts", h.Roster.DeleteShift)
			})

			r.Get("/holidays", h.Roster.GetHolidays)
			r.Put("/holidays", h.Roster.SetHoliday)

			r.Get("/employees", h.Directory.ListEmployees)
			r.Put("/employees", h.Directory.SaveEmployees)
			r.Get("/locations", h.Directory.ListLocations)
			r.Put("/locations", h.Directory.SaveLocations)

			r.Get("/export", h.Export.Document)
			r.Get("/export/xlsx", h.Export.Timesheet)
		})
	})

	// The static app shell is everything else.
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))

	return r
}
