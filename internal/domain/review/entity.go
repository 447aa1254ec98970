package review

import (
	"database/sql"
	"time"

	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
)

// Review is a customer review of the salon (matches reviews table)
type Review struct {
	ID           int64          `db:"id"`
	AuthorName   string         `db:"author_name"`
	AuthorAvatar sql.NullString `db:"author_avatar"`
	Rating       int            `db:"rating"`
	ReviewText   string         `db:"review_text"`
	ServiceName  sql.NullString `db:"service_name"`
	PetType      sql.NullString `db:"pet_type"`
	Approved     sqltypes.Flag  `db:"approved"`
	CreatedAt    time.Time      `db:"created_at"`
}

// ReviewResponse for API response
type ReviewResponse struct {
	ID           int64     `json:"id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar *string   `json:"author_avatar"`
	Rating       int       `json:"rating"`
	ReviewText   string    `json:"review_text"`
	ServiceName  *string   `json:"service_name"`
	PetType      *string   `json:"pet_type"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToResponse converts entity to response
func (r *Review) ToResponse() ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		AuthorName:   r.AuthorName,
		AuthorAvatar: sqltypes.StringPtr(r.AuthorAvatar),
		Rating:       r.Rating,
		ReviewText:   r.ReviewText,
		ServiceName:  sqltypes.StringPtr(r.ServiceName),
		PetType:      sqltypes.StringPtr(r.PetType),
		Approved:     bool(r.Approved),
		CreatedAt:    r.CreatedAt,
	}
}

// Stats summarises the approved reviews matching a listing filter.
type Stats struct {
	AverageRating float64     `json:"average_rating"`
	RatingCounts  map[int]int `json:"rating_counts"`
	TotalReviews  int         `json:"total_reviews"`
}
