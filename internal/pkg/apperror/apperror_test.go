package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchThroughWrapping(t *testing.T) {
	errBookingMissing := NotFound("Booking not found")
	wrapped := fmt.Errorf("update booking 7: %w", errBookingMissing)

	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.ErrorIs(t, wrapped, errBookingMissing)
	assert.NotErrorIs(t, wrapped, ErrValidation)
	assert.Equal(t, "Booking not found", Message(wrapped))
}

func TestStorageHidesDriverTextFromMessage(t *testing.T) {
	err := Storage("bookings.create", errors.New("database is locked"))

	assert.ErrorIs(t, err, ErrStorage)
	assert.Empty(t, Message(err))
	assert.Contains(t, err.Error(), "bookings.create")
}

func TestValidationFields(t *testing.T) {
	err := ValidationFields("Missing required field: pet_name", map[string]string{"pet_name": "This field is required"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "This field is required", Fields(err)["pet_name"])
}
