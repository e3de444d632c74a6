package rest

import (
	"net/http"

	"starwars/interfaces/http/rest/handlers"
	"starwars/interfaces/http/rest/middleware"
	"starwars/pkg/errors"
	"starwars/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	_ "starwars/docs"
)

// Router creates and configures the HTTP router
type Router struct {
	films        handlers.FilmService
	planets      handlers.PlanetService
	errorHandler *errors.ErrorHandler
	metrics      *observability.Collector
	enableCORS   bool
	logger       *zap.Logger
}

// NewRouter creates a new router instance. metrics may be nil, in which case
// /metrics is not mounted.
func NewRouter(
	films handlers.FilmService,
	planets handlers.PlanetService,
	metrics *observability.Collector,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		films:        films,
		planets:      planets,
		errorHandler: errors.NewErrorHandler(logger),
		metrics:      metrics,
		enableCORS:   enableCORS,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(middleware.Metrics(rt.metrics))
	}

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"https://*", "http://*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health-status", handlers.HealthCheck)
	if rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/films", func(r chi.Router) {
			filmHandler := handlers.NewFilmHandler(rt.films, rt.errorHandler, rt.logger)
			r.Post("/", filmHandler.CreateFilm)
			r.Get("/{id}", filmHandler.GetFilm)
			r.Put("/{id}", filmHandler.UpdateFilm)
			r.Delete("/{id}", filmHandler.DeleteFilm)
		})

		r.Route("/planets", func(r chi.Router) {
			planetHandler := handlers.NewPlanetHandler(rt.planets, rt.errorHandler, rt.logger)
			r.Post("/", planetHandler.CreatePlanet)
			r.Get("/{id}", planetHandler.GetPlanet)
			r.Put("/{id}", planetHandler.UpdatePlanet)
			r.Delete("/{id}", planetHandler.DeletePlanet)
		})

		r.Get("/docs/swagger.json", rt.swaggerDoc)
	})

	return router
}

// swaggerDoc serves the registered OpenAPI document
func (rt *Router) swaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		rt.logger.Error("Failed to read api documentation", zap.Error(err))
		rt.errorHandler.HandleStatus(w, r, http.StatusInternalServerError, "api documentation unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
