package gallery

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/database"
)

// Repository handles gallery database operations
type Repository interface {
	ListActive(ctx context.Context, category *string) ([]*Item, error)
	Create(ctx context.Context, item *Item) (int64, error)
}

type repository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewRepository creates gallery repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, sb: database.Builder(db)}
}

// ListActive returns visible items, featured first then newest
func (r *repository) ListActive(ctx context.Context, category *string) ([]*Item, error) {
	where := sq.Eq{"active": true}
	if category != nil {
		where["category"] = *category
	}

	query, args, err := r.sb.Select("id", "title", "description", "category", "image_url", "featured", "active", "created_at").
		From("gallery").
		Where(where).
		OrderBy("featured DESC", "created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, apperror.Storage("gallery.list", err)
	}

	items := []*Item{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, apperror.Storage("gallery.list", err)
	}
	return items, nil
}

// Create inserts a gallery item
func (r *repository) Create(ctx context.Context, item *Item) (int64, error) {
	query, args, err := r.sb.Insert("gallery").
		Columns("title", "description", "category", "image_url", "featured").
		Values(item.Title, item.Description, item.Category, item.ImageURL, item.Featured).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, apperror.Storage("gallery.create", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, apperror.Storage("gallery.create", err)
	}
	return id, nil
}
