package blog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/errorhandler"
	"github.com/petsalon/salon-api/internal/pkg/pagination"
	"github.com/petsalon/salon-api/internal/pkg/response"
)

// Handler handles blog HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates blog handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /blog
// @Summary List published posts
// @Tags Blog
// @Produce json
// @Param category query string false "Category, or all"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response{data=[]SummaryResponse}
// @Failure 400 {object} response.Response
// @Router /blog [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := pagination.FromQuery(q, DefaultPerPage)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}

	var category *string
	if c := q.Get("category"); c != "" && c != "all" {
		category = &c
	}

	result, err := h.service.List(r.Context(), category, page)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}

	response.WithPagination(w, result.Posts, result.Pagination, nil)
}

// GetByID handles GET /blog/{id}
// @Summary Read a post
// @Tags Blog
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} response.Response{data=PostResponse}
// @Failure 400,404 {object} response.Response
// @Router /blog/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		errorhandler.Handle(r.Context(), w, apperror.Validation("Invalid post ID"))
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}
	response.OK(w, post)
}

// Routes returns blog router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	return r
}
