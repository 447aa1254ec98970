package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns review router. writeLimit guards submissions.
func (h *Handler) Routes(writeLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.With(writeLimit).Post("/", h.Submit)

	return r
}
