package review

import (
	"context"
	"math"

	"github.com/petsalon/salon-api/internal/pkg/logger"
	"github.com/petsalon/salon-api/internal/pkg/metrics"
	"github.com/petsalon/salon-api/internal/pkg/pagination"
	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
	"github.com/petsalon/salon-api/internal/pkg/validator"
)

// Service handles review business logic
type Service struct {
	repo    Repository
	metrics *metrics.Metrics
}

// NewService creates review service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetMetrics enables domain counters
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// List returns a page of approved reviews with statistics over every approved review matching the filter.
func (s *Service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Rating != nil && (*params.Rating < 1 || *params.Rating > 5) {
		return nil, ErrRatingOutOfRange
	}

	counts, err := s.repo.RatingCounts(ctx, params.Rating)
	if err != nil {
		return nil, err
	}
	stats := computeStats(counts)

	reviews, err := s.repo.ListApproved(ctx, params.Rating, params.Page)
	if err != nil {
		return nil, err
	}

	items := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		items[i] = r.ToResponse()
	}

	return &ListResult{
		Reviews:    items,
		Pagination: pagination.NewMeta(params.Page, stats.TotalReviews),
		Stats:      stats,
	}, nil
}

// computeStats derives total and mean rating (one decimal, 0 when empty) from per-rating counts.
func computeStats(counts map[int]int) Stats {
	total, sum := 0, 0
	for rating, count := range counts {
		total += count
		sum += rating * count
	}

	avg := 0.0
	if total > 0 {
		avg = math.Round(float64(sum)/float64(total)*10) / 10
	}

	return Stats{
		AverageRating: avg,
		RatingCounts:  counts,
		TotalReviews:  total,
	}
}

// Submit stores a review for moderation
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (int64, error) {
	if err := validator.Check(req); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, &Review{
		AuthorName:   req.AuthorName,
		AuthorAvatar: sqltypes.NullString(req.AuthorAvatar),
		Rating:       *req.Rating,
		ReviewText:   req.ReviewText,
		ServiceName:  sqltypes.NullString(req.ServiceName),
		PetType:      sqltypes.NullString(req.PetType),
	})
	if err != nil {
		return 0, err
	}

	s.metrics.ReviewSubmitted()
	logger.FromContext(ctx).Info().
		Int64("review_id", id).
		Int("rating", *req.Rating).
		Msg("Review submitted for moderation")
	return id, nil
}

// Approve publishes a review so it appears in listings
func (s *Service) Approve(ctx context.Context, id int64) error {
	if err := s.repo.Approve(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Int64("review_id", id).Msg("Review approved")
	return nil
}
