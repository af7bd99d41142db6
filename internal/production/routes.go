package production

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/production", func(r chi.Router) {
		r.Get("/stations", h.ListStations)
		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.ListJobs)
			r.Post("/", h.CreateJob)
			r.Get("/{id}", h.GetJob)
			r.Post("/{id}/steps", h.RecordStep)
		})
	})
}
