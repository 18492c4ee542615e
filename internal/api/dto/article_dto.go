package dto

import "time"

// CreateArticleRequest payload. The slug is derived from the title
// server-side.
type CreateArticleRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Excerpt    *string  `json:"excerpt" validate:"omitempty,max=500"`
	Content    string   `json:"content" validate:"required,min=1"`
	Tags       []string `json:"tags"`
	CategoryID string   `json:"categoryId" validate:"required"`
	Published  *bool    `json:"published"`
}

// UpdateArticleRequest payload; absent fields stay untouched.
type UpdateArticleRequest struct {
	Title      string   `json:"title" validate:"omitempty,min=1,max=200"`
	Excerpt    *string  `json:"excerpt" validate:"omitempty,max=500"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	CategoryID string   `json:"categoryId"`
	Published  *bool    `json:"published"`
}

// ArticleResponse is the full article shape.
type ArticleResponse struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Slug      string           `json:"slug"`
	Excerpt   *string          `json:"excerpt"`
	Content   string           `json:"content"`
	Tags      []string         `json:"tags"`
	Category  *CategorySummary `json:"category"`
	Published bool             `json:"published"`
	ViewCount int              `json:"viewCount"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
