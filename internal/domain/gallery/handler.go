package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/petsalon/salon-api/internal/pkg/errorhandler"
	"github.com/petsalon/salon-api/internal/pkg/response"
)

// Handler handles gallery HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates gallery handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /gallery
// @Summary List gallery items
// @Tags Gallery
// @Produce json
// @Param category query string false "Category, or all"
// @Success 200 {object} response.Response{data=[]ItemResponse}
// @Router /gallery [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var category *string
	if c := r.URL.Query().Get("category"); c != "" && c != "all" {
		category = &c
	}

	items, err := h.service.List(r.Context(), category)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}
	response.OK(w, items)
}

// Routes returns gallery router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}
