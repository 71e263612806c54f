package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Device-space access: raw backend reads, sets, and triggers
		r.Route("/devices/{dev}/properties/{prop}", func(r chi.Router) {
			r.Get("/", s.handleReadDeviceProperty)
			r.Put("/", s.handleSetDeviceProperty)
			r.Post("/trigger", s.handleTriggerDeviceProperty)
		})

		// Lattice-space access: commands and reads rewritten through the
		// liaison and translator layers
		r.Route("/lattice", func(r chi.Router) {
			r.Post("/commands", s.handleLatticeCommand)
			r.Get("/elements/{elem}/properties/{prop}", s.handleReadLatticeProperty)
		})

		// Derived machine results and machine-wide resets
		r.Route("/machine", func(r chi.Router) {
			r.Get("/tune", s.handleMachineTune)
			r.Post("/clear", s.handleMachineClear)
			r.Post("/delta-references/clear", s.handleClearDeltaReferences)
		})

		// Yellow pages
		r.Route("/families", func(r chi.Router) {
			r.Get("/", s.handleListFamilies)
			r.Get("/{name}", s.handleGetFamily)
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"backend": s.backend.NaturalViewName(),
	})
}
