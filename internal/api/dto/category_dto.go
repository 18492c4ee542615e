package dto

import "time"

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Icon        *string `json:"icon" validate:"omitempty,max=50"`
	Color       *string `json:"color" validate:"omitempty,max=20"`
	SortOrder   *int    `json:"sortOrder"`
	Active      *bool   `json:"active"`
}

// UpdateCategoryRequest payload; absent fields stay untouched.
type UpdateCategoryRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Icon        *string `json:"icon" validate:"omitempty,max=50"`
	Color       *string `json:"color" validate:"omitempty,max=20"`
	SortOrder   *int    `json:"sortOrder"`
	Active      *bool   `json:"active"`
}

// CategoryResponse is the full category shape with usage counts.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description"`
	Icon         *string   `json:"icon"`
	Color        *string   `json:"color"`
	SortOrder    int       `json:"sortOrder"`
	Active       bool      `json:"active"`
	ArticleCount int       `json:"articleCount"`
	TicketCount  int       `json:"ticketCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
