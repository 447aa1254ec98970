package errorhandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/logger"
	"github.com/petsalon/salon-api/internal/pkg/response"
)

// Handle maps a classified error to its HTTP status and writes the error envelope.
// Unclassified and storage errors are logged in full and answered with a generic 500.
func Handle(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := classify(err)
	message := apperror.Message(err)

	if status == http.StatusInternalServerError {
		logger.FromContext(ctx).Error().
			Err(err).
			Int("status_code", status).
			Msg("Request failed")
		response.InternalError(w)
		return
	}

	logger.FromContext(ctx).Debug().
		Str("error_code", code).
		Str("error_message", message).
		Int("status_code", status).
		Msg("Request rejected")

	if fields := apperror.Fields(err); len(fields) > 0 {
		response.ErrorWithDetails(w, status, code, message, fields)
		return
	}
	response.Error(w, status, code, message)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrStorage):
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, apperror.ErrSlotConflict):
		// Clients expect 400 for an occupied slot.
		return http.StatusBadRequest, "SLOT_CONFLICT"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
