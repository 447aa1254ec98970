package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking router. writeLimit guards creates and updates.
func (h *Handler) Routes(writeLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(writeLimit)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
	})

	return r
}
