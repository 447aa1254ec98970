package order

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/database"
)

var ErrOrderNotFound = apperror.NotFound("Order not found")

// Repository handles order database operations
type Repository interface {
	Create(ctx context.Context, order *Order) (int64, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
}

type repository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewRepository creates order repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, sb: database.Builder(db)}
}

// Create inserts a new order with its items serialised as JSON
func (r *repository) Create(ctx context.Context, order *Order) (int64, error) {
	query, args, err := r.sb.Insert("orders").
		Columns("customer_name", "customer_phone", "total_amount", "status", "items_json").
		Values(order.CustomerName, order.CustomerPhone, order.TotalAmount, string(order.Status), order.Items).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, apperror.Storage("orders.create", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, apperror.Storage("orders.create", err)
	}
	return id, nil
}

// GetByID returns an order. Corrupt stored items fail the read.
func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	query, args, err := r.sb.Select("id", "customer_name", "customer_phone", "total_amount", "status", "items_json", "created_at").
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.Storage("orders.get", err)
	}

	var o Order
	if err := r.db.GetContext(ctx, &o, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, apperror.Storage("orders.get", err)
	}
	return &o, nil
}
