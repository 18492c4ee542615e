package domain

import "time"

// Article is a knowledge-base entry. Only published articles are visible
// through the public listing and search endpoints.
type Article struct {
	ID         string
	Title      string
	Slug       string
	Excerpt    *string
	Content    string
	Tags       []string
	CategoryID string
	Published  bool
	ViewCount  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category
}
