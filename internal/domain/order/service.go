package order

import (
	"context"

	"github.com/petsalon/salon-api/internal/pkg/logger"
	"github.com/petsalon/salon-api/internal/pkg/metrics"
	"github.com/petsalon/salon-api/internal/pkg/validator"
)

// CreateRequest is an order placed from the shop page
type CreateRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,max=30"`
	TotalAmount   *int   `json:"total_amount" validate:"required,gte=0"`
	Items         []Item `json:"items" validate:"required,min=1,dive"`
}

// Service handles order business logic
type Service struct {
	repo    Repository
	metrics *metrics.Metrics
}

// NewService creates order service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetMetrics enables domain counters
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Create stores a pending order
func (s *Service) Create(ctx context.Context, req *CreateRequest) (int64, error) {
	if err := validator.Check(req); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, &Order{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TotalAmount:   *req.TotalAmount,
		Status:        StatusPending,
		Items:         req.Items,
	})
	if err != nil {
		return 0, err
	}

	s.metrics.OrderCreated()
	logger.FromContext(ctx).Info().
		Int64("order_id", id).
		Int("items", len(req.Items)).
		Int("total_amount", *req.TotalAmount).
		Msg("Order created")
	return id, nil
}

// Get returns an order by ID
func (s *Service) Get(ctx context.Context, id int64) (*OrderResponse, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := o.ToResponse()
	return &resp, nil
}
