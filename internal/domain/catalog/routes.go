package catalog

import "github.com/go-chi/chi/v5"

// Routes returns catalog router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	return r
}
