package booking

import (
	"context"
	"errors"

	"github.com/petsalon/salon-api/internal/pkg/email"
	"github.com/petsalon/salon-api/internal/pkg/logger"
	"github.com/petsalon/salon-api/internal/pkg/metrics"
	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
	"github.com/petsalon/salon-api/internal/pkg/validator"
)

// Service handles booking business logic
type Service struct {
	repo     Repository
	metrics  *metrics.Metrics
	notifier *email.Service
}

// NewService creates booking service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetMetrics enables domain counters
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// SetNotifier enables staff emails for new bookings
func (s *Service) SetNotifier(n *email.Service) {
	s.notifier = n
}

// List returns bookings matching filter ordered by date and time
func (s *Service) List(ctx context.Context, filter Filter) ([]BookingResponse, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = b.ToResponse()
	}
	return items, nil
}

// Create books a slot. Fails with ErrSlotTaken when a pending or confirmed booking already holds it.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (int64, error) {
	if err := validator.Check(req); err != nil {
		return 0, err
	}

	date, err := sqltypes.ParseDate(req.BookingDate)
	if err != nil {
		return 0, ErrInvalidDate
	}

	log := logger.FromContext(ctx)

	id, err := s.repo.CreateIfSlotFree(ctx, &Booking{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: sqltypes.NullString(req.CustomerEmail),
		PetName:       req.PetName,
		PetBreed:      req.PetBreed,
		ServiceName:   req.ServiceName,
		ServicePrice:  *req.ServicePrice,
		BookingDate:   date,
		BookingTime:   req.BookingTime,
		Status:        StatusPending,
		Notes:         sqltypes.NullString(req.Notes),
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.metrics.SlotConflict()
			log.Warn().
				Str("booking_date", req.BookingDate).
				Str("booking_time", req.BookingTime).
				Msg("Booking slot already taken")
		}
		return 0, err
	}

	s.metrics.BookingCreated()
	s.notifier.NotifyBooking(email.BookingNotice{
		ID:            id,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PetName:       req.PetName,
		PetBreed:      req.PetBreed,
		ServiceName:   req.ServiceName,
		Date:          req.BookingDate,
		Time:          req.BookingTime,
		Notes:         req.Notes,
	})
	log.Info().
		Int64("booking_id", id).
		Str("booking_date", req.BookingDate).
		Str("booking_time", req.BookingTime).
		Str("service", req.ServiceName).
		Msg("Booking created")
	return id, nil
}

// Update applies a status and/or notes change
func (s *Service) Update(ctx context.Context, id int64, patch Patch) error {
	if patch.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.metrics.SlotConflict()
		}
		return err
	}

	event := logger.FromContext(ctx).Info().Int64("booking_id", id)
	if patch.Status != nil {
		event = event.Str("status", string(*patch.Status))
	}
	event.Msg("Booking updated")
	return nil
}
