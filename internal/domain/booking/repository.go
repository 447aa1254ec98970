package booking

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/database"
)

// Repository handles booking database operations
type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Booking, error)
	CreateIfSlotFree(ctx context.Context, booking *Booking) (int64, error)
	Update(ctx context.Context, id int64, patch Patch) error
}

type repository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

var bookingColumns = []string{
	"id", "customer_name", "customer_phone", "customer_email", "pet_name", "pet_breed",
	"service_name", "service_price", "booking_date", "booking_time", "status", "notes", "created_at",
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, sb: database.Builder(db)}
}

// List returns bookings ordered by date and time
func (r *repository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	qb := r.sb.Select(bookingColumns...).From("bookings")
	if filter.Date != nil {
		qb = qb.Where(sq.Eq{"booking_date": *filter.Date})
	}
	if filter.Status != nil {
		qb = qb.Where(sq.Eq{"status": string(*filter.Status)})
	}

	query, args, err := qb.OrderBy("booking_date ASC", "booking_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, apperror.Storage("bookings.list", err)
	}

	bookings := []*Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, apperror.Storage("bookings.list", err)
	}
	return bookings, nil
}

// CreateIfSlotFree inserts the booking unless another pending or confirmed booking holds its slot.
// The check and insert share a transaction; the partial unique index settles races between transactions.
func (r *repository) CreateIfSlotFree(ctx context.Context, booking *Booking) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, apperror.Storage("bookings.create", err)
	}
	defer tx.Rollback()

	query, args, err := r.sb.Select("COUNT(*)").
		From("bookings").
		Where(sq.Eq{
			"booking_date": booking.BookingDate,
			"booking_time": booking.BookingTime,
			"status":       slotHoldingStatuses,
		}).
		ToSql()
	if err != nil {
		return 0, apperror.Storage("bookings.create", err)
	}

	var taken int
	if err := tx.GetContext(ctx, &taken, query, args...); err != nil {
		return 0, apperror.Storage("bookings.create", err)
	}
	if taken > 0 {
		return 0, ErrSlotTaken
	}

	query, args, err = r.sb.Insert("bookings").
		Columns(
			"customer_name", "customer_phone", "customer_email", "pet_name", "pet_breed",
			"service_name", "service_price", "booking_date", "booking_time", "status", "notes",
		).
		Values(
			booking.CustomerName, booking.CustomerPhone, booking.CustomerEmail, booking.PetName, booking.PetBreed,
			booking.ServiceName, booking.ServicePrice, booking.BookingDate, booking.BookingTime, string(booking.Status), booking.Notes,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, apperror.Storage("bookings.create", err)
	}

	var id int64
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if database.IsUniqueViolation(err) {
			return 0, ErrSlotTaken
		}
		return 0, apperror.Storage("bookings.create", err)
	}

	if err := tx.Commit(); err != nil {
		if database.IsUniqueViolation(err) {
			return 0, ErrSlotTaken
		}
		return 0, apperror.Storage("bookings.create", err)
	}
	return id, nil
}

// Update applies a partial update
func (r *repository) Update(ctx context.Context, id int64, patch Patch) error {
	if patch.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	query, args, err := r.sb.Update("bookings").
		SetMap(patch.columns()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.Storage("bookings.update", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		// reactivating a cancelled booking into a slot that has been taken since
		if database.IsUniqueViolation(err) {
			return ErrSlotTaken
		}
		return apperror.Storage("bookings.update", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage("bookings.update", err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
