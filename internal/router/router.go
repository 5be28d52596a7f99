// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// prompt wizard API. Routes are grouped by concern, and the endpoints
// that call an AI provider sit behind a per-client rate limiter.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptwizard/internal/handlers"
	"promptwizard/internal/middleware"
)

// maxJSONBody caps ordinary JSON request bodies. Library imports set their
// own, larger limit.
const maxJSONBody = 1 << 20

// Deps carries the handler groups and shared middleware the routes need.
type Deps struct {
	Prompts   *handlers.Prompts
	Wizard    *handlers.Wizard
	Library   *handlers.Library
	AILimiter *middleware.RateLimiter // nil disables AI rate limiting
	Metrics   http.Handler            // nil disables /metrics
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", healthHandler)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		// Library import reads its own, larger body.
		r.Post("/library/import", d.Library.Import)

		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBody(maxJSONBody))

			r.Get("/options", d.Prompts.Options)
			r.Post("/placeholders/preview", d.Prompts.PreviewPlaceholders)

			r.Route("/ai", func(r chi.Router) {
				// Endpoints that spend provider tokens.
				r.Group(func(r chi.Router) {
					if d.AILimiter != nil {
						r.Use(d.AILimiter.Middleware)
					}
					r.Post("/keywords-wizard", d.Wizard.KeywordWizard)
					r.Post("/name-wizard", d.Wizard.NameWizard)
					r.Post("/related-keywords", d.Wizard.RelatedKeywords)
					r.Post("/random-keywords", d.Wizard.RandomKeywords)
					r.Post("/refine", d.Wizard.Refine)
				})

				r.Get("/trends", d.Wizard.Trends)
				r.Get("/providers", d.Wizard.Providers)
				r.Put("/providers", d.Wizard.SetProvider)
				r.Delete("/cache", d.Wizard.PurgeCache)
				r.Get("/cache/purges", d.Wizard.PurgeHistory)
			})

			r.Route("/prompts", func(r chi.Router) {
				r.Get("/", d.Library.List)
				r.Post("/", d.Library.Save)
				r.Post("/generate", d.Prompts.Generate)
				r.Get("/{id}", d.Library.Get)
				r.Delete("/{id}", d.Library.Delete)
				r.Post("/{id}/duplicate", d.Library.Duplicate)
				r.Post("/{id}/favorite", d.Library.ToggleFavorite)
				r.Put("/{id}/tags", d.Library.UpdateTags)
				r.Put("/{id}/variables", d.Library.UpdateVariables)
				r.Get("/{id}/export", d.Library.ExportOne)
			})

			r.Route("/library", func(r chi.Router) {
				r.Get("/tags", d.Library.Tags)
				r.Get("/export", d.Library.Export)
				r.Post("/backup", d.Library.Backup)
				r.Get("/backups", d.Library.Backups)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func writeStatus(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
