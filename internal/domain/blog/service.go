package blog

import (
	"context"

	"github.com/petsalon/salon-api/internal/pkg/metrics"
	"github.com/petsalon/salon-api/internal/pkg/pagination"
)

// DefaultPerPage is the page size of the blog listing.
const DefaultPerPage = 6

// ListResult is one page of post summaries
type ListResult struct {
	Posts      []SummaryResponse
	Pagination pagination.Meta
}

// Service handles blog business logic
type Service struct {
	repo    Repository
	metrics *metrics.Metrics
}

// NewService creates blog service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetMetrics enables domain counters
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// List returns a page of published posts, newest first
func (s *Service) List(ctx context.Context, category *string, page pagination.Params) (*ListResult, error) {
	posts, total, err := s.repo.ListPublished(ctx, category, page)
	if err != nil {
		return nil, err
	}

	items := make([]SummaryResponse, len(posts))
	for i, p := range posts {
		items[i] = p.ToSummary()
	}

	return &ListResult{
		Posts:      items,
		Pagination: pagination.NewMeta(page, total),
	}, nil
}

// Get returns a published post and counts the read
func (s *Service) Get(ctx context.Context, id int64) (*PostResponse, error) {
	p, err := s.repo.ReadPublished(ctx, id)
	if err != nil {
		return nil, err
	}

	s.metrics.BlogPostViewed()
	resp := p.ToResponse()
	return &resp, nil
}
