package review

import "github.com/petsalon/salon-api/internal/pkg/pagination"

// DefaultPerPage is the page size of the public review listing.
const DefaultPerPage = 6

// SubmitRequest is a review left by a customer
type SubmitRequest struct {
	AuthorName   string `json:"author_name" validate:"required,max=100"`
	AuthorAvatar string `json:"author_avatar" validate:"max=10"`
	Rating       *int   `json:"rating" validate:"required,gte=1,lte=5"`
	ReviewText   string `json:"review_text" validate:"required,max=2000"`
	ServiceName  string `json:"service_name" validate:"max=200"`
	PetType      string `json:"pet_type" validate:"max=50"`
}

// ListParams selects a page of approved reviews, optionally of a single rating.
type ListParams struct {
	Rating *int
	Page   pagination.Params
}

// ListResult is one page of reviews plus statistics over the whole filtered set.
type ListResult struct {
	Reviews    []ReviewResponse
	Pagination pagination.Meta
	Stats      Stats
}
