package catalog

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/database"
)

var ErrServiceNotFound = apperror.NotFound("Service not found")

// Filter narrows the service listing. Nil fields are not applied.
type Filter struct {
	Category    *string
	PopularOnly bool
}

// Repository defines service catalog data access
type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Service, error)
	GetActive(ctx context.Context, id int64) (*Service, error)
}

type repository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

var serviceColumns = []string{
	"id", "name", "description", "price", "category", "duration", "popular", "active", "created_at",
}

// NewRepository creates new catalog repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, sb: database.Builder(db)}
}

func (r *repository) List(ctx context.Context, filter Filter) ([]*Service, error) {
	query := r.sb.Select(serviceColumns...).
		From("services").
		Where(sq.Eq{"active": true}).
		OrderBy("popular DESC", "name ASC")

	if filter.Category != nil {
		query = query.Where(sq.Eq{"category": *filter.Category})
	}
	if filter.PopularOnly {
		query = query.Where(sq.Eq{"popular": true})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, apperror.Storage("services.list", err)
	}

	services := []*Service{}
	if err := r.db.SelectContext(ctx, &services, sqlStr, args...); err != nil {
		return nil, apperror.Storage("services.list", err)
	}
	return services, nil
}

func (r *repository) GetActive(ctx context.Context, id int64) (*Service, error) {
	sqlStr, args, err := r.sb.Select(serviceColumns...).
		From("services").
		Where(sq.Eq{"id": id, "active": true}).
		ToSql()
	if err != nil {
		return nil, apperror.Storage("services.get", err)
	}

	var s Service
	if err := r.db.GetContext(ctx, &s, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, apperror.Storage("services.get", err)
	}
	return &s, nil
}
