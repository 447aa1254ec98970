package booking

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/errorhandler"
	"github.com/petsalon/salon-api/internal/pkg/response"
	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /bookings
// @Summary List bookings
// @Tags Booking
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param status query string false "pending, confirmed, completed or cancelled"
// @Success 200 {object} response.Response{data=[]BookingResponse}
// @Failure 400 {object} response.Response
// @Router /bookings [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter Filter
	if raw := q.Get("date"); raw != "" {
		date, err := sqltypes.ParseDate(raw)
		if err != nil {
			errorhandler.Handle(r.Context(), w, ErrInvalidDate)
			return
		}
		filter.Date = &date
	}
	if raw := q.Get("status"); raw != "" {
		status := Status(raw)
		filter.Status = &status
	}

	bookings, err := h.service.List(r.Context(), filter)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}
	response.OK(w, bookings)
}

// Create handles POST /bookings
// @Summary Book a grooming slot
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Booking"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /bookings [post]
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

	response.Created(w, "Booking created successfully", id)
}

// Update handles PUT /bookings/{id}
// @Summary Update booking status or notes
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 400,404 {object} response.Response
// @Router /bookings/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		errorhandler.Handle(r.Context(), w, apperror.Validation("Invalid booking ID"))
		return
	}

	var fields map[string]json.RawMessage
	if err := response.DecodeJSON(r.Body, &fields); err != nil {
		errorhandler.Handle(r.Context(), w, apperror.Validation("Invalid JSON body"))
		return
	}

	patch, err := ParsePatch(fields)
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}

	if err := h.service.Update(r.Context(), id, patch); err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}

	response.Message(w, "Booking updated successfully")
}
