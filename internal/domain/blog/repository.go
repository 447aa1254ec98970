package blog

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/database"
	"github.com/petsalon/salon-api/internal/pkg/pagination"
)

var ErrPostNotFound = apperror.NotFound("Post not found")

// Repository handles blog database operations
type Repository interface {
	ListPublished(ctx context.Context, category *string, page pagination.Params) ([]*Post, int, error)
	ReadPublished(ctx context.Context, id int64) (*Post, error)
}

type repository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

var summaryColumns = []string{
	"id", "title", "excerpt", "category", "author", "read_time", "image_url", "published", "views", "created_at",
}

var postColumns = append([]string{"content"}, summaryColumns...)

// NewRepository creates blog repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, sb: database.Builder(db)}
}

func publishedFilter(category *string) sq.Eq {
	where := sq.Eq{"published": true}
	if category != nil {
		where["category"] = *category
	}
	return where
}

// ListPublished returns one page of published posts (without content) and the total match count
func (r *repository) ListPublished(ctx context.Context, category *string, page pagination.Params) ([]*Post, int, error) {
	countQuery, countArgs, err := r.sb.Select("COUNT(*)").
		From("blog_posts").
		Where(publishedFilter(category)).
		ToSql()
	if err != nil {
		return nil, 0, apperror.Storage("blog.count", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, apperror.Storage("blog.count", err)
	}

	query, args, err := r.sb.Select(summaryColumns...).
		From("blog_posts").
		Where(publishedFilter(category)).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.PerPage)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, apperror.Storage("blog.list", err)
	}

	posts := []*Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, 0, apperror.Storage("blog.list", err)
	}
	return posts, total, nil
}

// ReadPublished counts a view and returns the post in one statement.
// Missing and unpublished posts are reported as not found and their counter is left alone.
func (r *repository) ReadPublished(ctx context.Context, id int64) (*Post, error) {
	query, args, err := r.sb.Update("blog_posts").
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"id": id, "published": true}).
		Suffix("RETURNING " + strings.Join(postColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, apperror.Storage("blog.read", err)
	}

	var p Post
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, apperror.Storage("blog.read", err)
	}
	return &p, nil
}
