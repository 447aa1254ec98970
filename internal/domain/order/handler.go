package order

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/errorhandler"
	"github.com/petsalon/salon-api/internal/pkg/response"
)

// Handler handles order HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates order handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /orders
// @Summary Place an order
// @Tags Order
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Order"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /orders [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		errorhandler.Handle(r.Context(), w, apperror.Validation("Invalid JSON body"))
		return
	}

	id, err := h.service.Create(r.Context(), &req)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}

	response.Created(w, "Order created successfully", id)
}

// GetByID handles GET /orders/{id}
// @Summary Get order by ID
// @Tags Order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} response.Response{data=OrderResponse}
// @Failure 400,404 {object} response.Response
// @Router /orders/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		errorhandler.Handle(r.Context(), w, apperror.Validation("Invalid order ID"))
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}
	response.OK(w, order)
}

// Routes returns order router. writeLimit guards order creation.
func (h *Handler) Routes(writeLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(writeLimit).Post("/", h.Create)
	r.Get("/{id}", h.GetByID)

	return r
}
