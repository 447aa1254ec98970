package review

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/database"
	"github.com/petsalon/salon-api/internal/pkg/pagination"
)

var (
	ErrReviewNotFound   = apperror.NotFound("Review not found")
	ErrRatingOutOfRange = apperror.Validation("Rating must be between 1 and 5")
)

// Repository handles review database operations
type Repository interface {
	ListApproved(ctx context.Context, rating *int, page pagination.Params) ([]*Review, error)
	RatingCounts(ctx context.Context, rating *int) (map[int]int, error)
	Create(ctx context.Context, review *Review) (int64, error)
	Approve(ctx context.Context, id int64) error
}

type repository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

var reviewColumns = []string{
	"id", "author_name", "author_avatar", "rating", "review_text",
	"service_name", "pet_type", "approved", "created_at",
}

// NewRepository creates a new review repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, sb: database.Builder(db)}
}

func approvedFilter(rating *int) sq.Eq {
	where := sq.Eq{"approved": true}
	if rating != nil {
		where["rating"] = *rating
	}
	return where
}

// ListApproved returns one page of approved reviews, newest first
func (r *repository) ListApproved(ctx context.Context, rating *int, page pagination.Params) ([]*Review, error) {
	query, args, err := r.sb.Select(reviewColumns...).
		From("reviews").
		Where(approvedFilter(rating)).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.PerPage)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, apperror.Storage("reviews.list", err)
	}

	reviews := []*Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, apperror.Storage("reviews.list", err)
	}
	return reviews, nil
}

// RatingCounts returns how many approved reviews carry each rating. Ratings with no reviews are absent.
func (r *repository) RatingCounts(ctx context.Context, rating *int) (map[int]int, error) {
	query, args, err := r.sb.Select("rating", "COUNT(*) AS count").
		From("reviews").
		Where(approvedFilter(rating)).
		GroupBy("rating").
		ToSql()
	if err != nil {
		return nil, apperror.Storage("reviews.rating_counts", err)
	}

	type ratingCount struct {
		Rating int `db:"rating"`
		Count  int `db:"count"`
	}
	var rows []ratingCount
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Storage("reviews.rating_counts", err)
	}

	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}

// Create stores a review. New reviews always await moderation.
func (r *repository) Create(ctx context.Context, review *Review) (int64, error) {
	query, args, err := r.sb.Insert("reviews").
		Columns("author_name", "author_avatar", "rating", "review_text", "service_name", "pet_type", "approved").
		Values(review.AuthorName, review.AuthorAvatar, review.Rating, review.ReviewText, review.ServiceName, review.PetType, false).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, apperror.Storage("reviews.create", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if database.IsCheckViolation(err) {
			return 0, ErrRatingOutOfRange
		}
		return 0, apperror.Storage("reviews.create", err)
	}
	return id, nil
}

// Approve publishes a review
func (r *repository) Approve(ctx context.Context, id int64) error {
	query, args, err := r.sb.Update("reviews").
		Set("approved", true).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.Storage("reviews.approve", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.Storage("reviews.approve", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage("reviews.approve", err)
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
