// Package http provides the HTTP delivery layer for the link shortener.
// It serves the server rendered pages, the JSON links API and its docs, and
// resolves the signed-in user from the identity provider's session token.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/link-shortener/docs"
	"github.com/vadimbarashkov/link-shortener/internal/ui"
	"github.com/vadimbarashkov/link-shortener/pkg/middleware/recoverer"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes and returns a new Chi router configured with middleware, pages and the links API.
func NewRouter(
	logger *httplog.Logger,
	linkUseCase linkUseCase,
	sessions sessionVerifier,
	pages pageRenderer,
	sessionCookie string,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer.New(logger.Logger, serverErrorResponse))
	r.Use(sessionMiddleware(sessions, sessionCookie))

	ph := newPageHandler(pages, linkUseCase)

	r.Get("/", ph.home)
	r.Get("/dashboard", ph.dashboard)
	r.Handle("/static/*", http.StripPrefix("/static/", ui.StaticHandler()))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))
	r.Get("/docs/swagger.yml", handleSwaggerSpec)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Route("/links", func(r chi.Router) {
			r.Use(requireUser)

			h := newLinkHandler(linkUseCase, validator.New())

			r.Post("/", h.createLink)
			r.Get("/", h.listLinks)

			r.Route("/{shortCode}", func(r chi.Router) {
				r.Get("/", h.getLink)
				r.Put("/", h.modifyLink)
				r.Delete("/", h.deleteLink)
			})
		})
	})

	return r
}

func handleSwaggerSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(docs.Swagger)
}
