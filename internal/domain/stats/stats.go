package stats

import (
	"context"
	"database/sql"
	"math"
	"net/http"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/database"
	"github.com/petsalon/salon-api/internal/pkg/errorhandler"
	"github.com/petsalon/salon-api/internal/pkg/response"
)

// Summary is the public salon overview
type Summary struct {
	ServicesCount      int            `json:"services_count"`
	ReviewsCount       int            `json:"reviews_count"`
	CompletedBookings  int            `json:"completed_bookings"`
	AverageRating      float64        `json:"average_rating"`
	ServicesByCategory map[string]int `json:"services_by_category"`
}

// Repository aggregates counters across tables
type Repository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewRepository creates stats repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db, sb: database.Builder(db)}
}

func (r *Repository) count(ctx context.Context, table string, where sq.Eq) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	err = r.db.GetContext(ctx, &n, query, args...)
	return n, err
}

// Summary computes the overview. Only active services, approved reviews and completed bookings count.
func (r *Repository) Summary(ctx context.Context) (*Summary, error) {
	s := &Summary{ServicesByCategory: map[string]int{}}

	var err error
	if s.ServicesCount, err = r.count(ctx, "services", sq.Eq{"active": true}); err != nil {
		return nil, apperror.Storage("stats.services", err)
	}
	if s.ReviewsCount, err = r.count(ctx, "reviews", sq.Eq{"approved": true}); err != nil {
		return nil, apperror.Storage("stats.reviews", err)
	}
	if s.CompletedBookings, err = r.count(ctx, "bookings", sq.Eq{"status": "completed"}); err != nil {
		return nil, apperror.Storage("stats.bookings", err)
	}

	query, args, err := r.sb.Select("AVG(rating)").From("reviews").Where(sq.Eq{"approved": true}).ToSql()
	if err != nil {
		return nil, apperror.Storage("stats.rating", err)
	}
	var avg sql.NullFloat64
	if err := r.db.GetContext(ctx, &avg, query, args...); err != nil {
		return nil, apperror.Storage("stats.rating", err)
	}
	if avg.Valid {
		s.AverageRating = math.Round(avg.Float64*10) / 10
	}

	query, args, err = r.sb.Select("category", "COUNT(*) AS count").
		From("services").
		Where(sq.Eq{"active": true}).
		GroupBy("category").
		ToSql()
	if err != nil {
		return nil, apperror.Storage("stats.categories", err)
	}
	var rows []struct {
		Category string `db:"category"`
		Count    int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Storage("stats.categories", err)
	}
	for _, row := range rows {
		s.ServicesByCategory[row.Category] = row.Count
	}

	return s, nil
}

// Handler serves GET /stats
type Handler struct {
	repo *Repository
}

// NewHandler creates stats handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Get handles GET /stats
// @Summary Salon overview counters
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Response{data=Summary}
// @Router /stats [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.repo.Summary(r.Context())
	if err != nil {
		errorhandler.Handle(r.Context(), w, err)
		return
	}
	response.OK(w, summary)
}

// Routes returns stats router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}
