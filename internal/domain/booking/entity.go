package booking

import (
	"database/sql"
	"time"

	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
)

// Status represents booking status
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// HoldsSlot reports whether a booking in this status occupies its date and time.
func (s Status) HoldsSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}

// slotHoldingStatuses must match the predicate of the bookings_active_slot_key index.
var slotHoldingStatuses = []string{string(StatusPending), string(StatusConfirmed)}

// Booking represents a grooming appointment (matches bookings table).
// Service name and price are copied at booking time so later catalog changes never rewrite history.
type Booking struct {
	ID            int64          `db:"id"`
	CustomerName  string         `db:"customer_name"`
	CustomerPhone string         `db:"customer_phone"`
	CustomerEmail sql.NullString `db:"customer_email"`
	PetName       string         `db:"pet_name"`
	PetBreed      string         `db:"pet_breed"`
	ServiceName   string         `db:"service_name"`
	ServicePrice  int            `db:"service_price"`
	BookingDate   sqltypes.Date  `db:"booking_date"`
	BookingTime   string         `db:"booking_time"`
	Status        Status         `db:"status"`
	Notes         sql.NullString `db:"notes"`
	CreatedAt     time.Time      `db:"created_at"`
}

// BookingResponse for API response
type BookingResponse struct {
	ID            int64         `json:"id"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	CustomerEmail *string       `json:"customer_email"`
	PetName       string        `json:"pet_name"`
	PetBreed      string        `json:"pet_breed"`
	ServiceName   string        `json:"service_name"`
	ServicePrice  int           `json:"service_price"`
	BookingDate   sqltypes.Date `json:"booking_date"`
	BookingTime   string        `json:"booking_time"`
	Status        Status        `json:"status"`
	Notes         *string       `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ToResponse converts entity to response
func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: sqltypes.StringPtr(b.CustomerEmail),
		PetName:       b.PetName,
		PetBreed:      b.PetBreed,
		ServiceName:   b.ServiceName,
		ServicePrice:  b.ServicePrice,
		BookingDate:   b.BookingDate,
		BookingTime:   b.BookingTime,
		Status:        b.Status,
		Notes:         sqltypes.StringPtr(b.Notes),
		CreatedAt:     b.CreatedAt,
	}
}
