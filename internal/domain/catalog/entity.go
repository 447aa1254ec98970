package catalog

import (
	"time"

	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
)

// Service is a grooming service offered by the salon (matches services table)
type Service struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Price       int64          `db:"price"`
	Category    string         `db:"category"`
	Duration    int            `db:"duration"`
	Popular     sqltypes.Flag  `db:"popular"`
	Active      sqltypes.Flag  `db:"active"`
	CreatedAt   time.Time      `db:"created_at"`
}

// ServiceResponse is the public representation of a service
type ServiceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Duration    int    `json:"duration"`
	Popular     bool   `json:"popular"`
}

func (s *Service) ToResponse() ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Category:    s.Category,
		Duration:    s.Duration,
		Popular:     bool(s.Popular),
	}
}
