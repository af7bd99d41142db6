package dashboard

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/finance/summary", h.FinanceSummary)
		r.Get("/operations/summary", h.OperationsSummary)
	})
}
