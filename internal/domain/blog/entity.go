package blog

import (
	"database/sql"
	"time"

	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
)

// Post represents a blog post (matches blog_posts table)
type Post struct {
	ID        int64          `db:"id"`
	Title     string         `db:"title"`
	Excerpt   string         `db:"excerpt"`
	Content   string         `db:"content"`
	Category  string         `db:"category"`
	Author    string         `db:"author"`
	ReadTime  string         `db:"read_time"`
	ImageURL  sql.NullString `db:"image_url"`
	Published sqltypes.Flag  `db:"published"`
	Views     int            `db:"views"`
	CreatedAt time.Time      `db:"created_at"`
}

// SummaryResponse is a post in the blog listing
type SummaryResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	ReadTime  string    `json:"read_time"`
	ImageURL  *string   `json:"image_url"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"created_at"`
}

// PostResponse is a full post
type PostResponse struct {
	SummaryResponse
	Content string `json:"content"`
}

// ToSummary converts entity to listing response
func (p *Post) ToSummary() SummaryResponse {
	return SummaryResponse{
		ID:        p.ID,
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		Category:  p.Category,
		Author:    p.Author,
		ReadTime:  p.ReadTime,
		ImageURL:  sqltypes.StringPtr(p.ImageURL),
		Views:     p.Views,
		CreatedAt: p.CreatedAt,
	}
}

// ToResponse converts entity to full response
func (p *Post) ToResponse() PostResponse {
	return PostResponse{SummaryResponse: p.ToSummary(), Content: p.Content}
}
