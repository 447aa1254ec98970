package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/errorhandler"
	"github.com/petsalon/salon-api/internal/pkg/response"
)

// Handler handles contact form HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates contact handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /contacts
// @Summary Send a message to the salon
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Message"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /contacts [post]
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

	response.Created(w, "Message sent successfully", id)
}

// Routes returns contact router. writeLimit guards the form.
func (h *Handler) Routes(writeLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(writeLimit).Post("/", h.Create)
	return r
}
