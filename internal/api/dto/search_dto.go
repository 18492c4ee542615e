package dto

// SearchArticlesRequest is the help-widget search payload.
type SearchArticlesRequest struct {
	Query string `json:"query" validate:"required,min=1,max=100"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=20"`
}
