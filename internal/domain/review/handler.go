package review

import (
	"net/http"
	"strconv"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/errorhandler"
	"github.com/petsalon/salon-api/internal/pkg/pagination"
	"github.com/petsalon/salon-api/internal/pkg/response"
)

// Handler handles review HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new review handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /reviews
// @Summary List approved reviews
// @Tags Review
// @Produce json
// @Param rating query int false "Rating 1-5, or all"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response{data=[]ReviewResponse}
// @Failure 400 {object} response.Response
// @Router /reviews [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := pagination.FromQuery(q, DefaultPerPage)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}

	params := ListParams{Page: page}
	if raw := q.Get("rating"); raw != "" && raw != "all" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			errorhandler.Handle(r.Context(), w, apperror.Validation("Invalid rating parameter"))
			return
		}
		params.Rating = &rating
	}

	result, err := h.service.List(r.Context(), params)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}

	response.WithPagination(w, result.Reviews, result.Pagination, result.Stats)
}

// Submit handles POST /reviews
// @Summary Submit a review for moderation
// @Tags Review
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Review"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reviews [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		errorhandler.Handle(r.Context(), w, apperror.Validation("Invalid JSON body"))
		return
	}

	id, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}

	response.Created(w, "Review submitted for moderation", id)
}
