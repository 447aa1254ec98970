package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/errorhandler"
	"github.com/petsalon/salon-api/internal/pkg/response"
)

// Handler handles service catalog HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates catalog handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /services
// @Summary List active services
// @Tags Catalog
// @Produce json
// @Param category query string false "Category, or all"
// @Param popular query bool false "Only popular services"
// @Success 200 {object} response.Response{data=[]ServiceResponse}
// @Router /services [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter Filter
	if category := q.Get("category"); category != "" && category != "all" {
		filter.Category = &category
	}
	filter.PopularOnly = q.Get("popular") == "true"

	services, err := h.repo.List(r.Context(), filter)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}

	items := make([]ServiceResponse, len(services))
	for i, s := range services {
		items[i] = s.ToResponse()
	}
	response.OK(w, items)
}

// GetByID handles GET /services/{id}
// @Summary Get service by ID
// @Tags Catalog
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} response.Response{data=ServiceResponse}
// @Failure 400,404 {object} response.Response
// @Router /services/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		errorhandler.Handle(r.Context(), w, apperror.Validation("Invalid service ID"))
		return
	}

	service, err := h.repo.GetActive(r.Context(), id)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}
	response.OK(w, service.ToResponse())
}
