package domain

import "time"

// Category groups articles and optionally labels tickets. Tickets keep a
// soft reference: deleting a category nulls it out rather than cascading.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description *string
	Icon        *string
	Color       *string
	SortOrder   int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	ArticleCount int
	TicketCount  int
}
