package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"wrapstudio/internal/http/handlers"
	"wrapstudio/internal/middleware"
)

// NewRouter mounts every /v1 route. Compile and render endpoints are rate
// limited per client IP; stored images are served under /static when a
// store is configured.
func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(app.Logger),
		chimw.Recoverer,
	)
	if app.Config != nil {
		r.Use(middleware.CORS(app.Config.CORSAllowedOrigins))
	}

	rateLimit := 0
	if app.Config != nil {
		rateLimit = app.Config.RateLimitPerMin
	}
	limited := middleware.RateLimit(rateLimit, time.Minute)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)

		r.Post("/interpret", app.Interpret)
		r.Post("/estimates", app.Estimates)
		r.Post("/placements", app.Placements)

		r.Route("/angles", func(r chi.Router) {
			r.Get("/", app.Angles)
			r.Get("/spin", app.SpinAngles)
			r.Get("/{view}", app.AngleByView)
		})

		r.With(limited).Post("/prompts", app.Prompts)

		r.Route("/renders", func(r chi.Router) {
			r.With(limited).Post("/", app.CreateRender)
			r.Get("/{id}", app.GetRender)
			r.Get("/{id}/archive", app.RenderArchive)
			r.With(limited).Post("/{id}/revisions", app.CreateRevision)
		})
	})

	if app.Store != nil {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(app.Store.BasePath())))
		r.Get("/static/*", fs.ServeHTTP)
	}

	return r
}
