package gallery

import (
	"database/sql"
	"time"

	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
)

// Item is a gallery photo (matches gallery table)
type Item struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Category    string         `db:"category"`
	ImageURL    sql.NullString `db:"image_url"`
	Featured    sqltypes.Flag  `db:"featured"`
	Active      sqltypes.Flag  `db:"active"`
	CreatedAt   time.Time      `db:"created_at"`
}

// ItemResponse for API response
type ItemResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"image_url"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts entity to response
func (i *Item) ToResponse() ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Title:       i.Title,
		Description: sqltypes.StringPtr(i.Description),
		Category:    i.Category,
		ImageURL:    sqltypes.StringPtr(i.ImageURL),
		Featured:    bool(i.Featured),
		CreatedAt:   i.CreatedAt,
	}
}

// AddRequest describes a new gallery item
type AddRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"required,max=50"`
	Featured    bool   `json:"featured"`
}
