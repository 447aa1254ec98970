package booking

import "github.com/petsalon/salon-api/internal/pkg/apperror"

var (
	ErrBookingNotFound  = apperror.NotFound("Booking not found")
	ErrSlotTaken        = apperror.SlotConflict("This time slot is already booked")
	ErrInvalidStatus    = apperror.Validation("Invalid booking status")
	ErrInvalidDate      = apperror.Validation("Invalid date, expected YYYY-MM-DD")
	ErrNoFieldsToUpdate = apperror.Validation("No valid fields to update")
)
