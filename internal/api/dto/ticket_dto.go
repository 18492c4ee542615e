package dto

import (
	"time"

	"github.com/albedo-hq/support-portal/internal/domain"
)

// CreateTicketRequest is the public submission payload.
type CreateTicketRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Name       *string `json:"name" validate:"omitempty,max=100"`
	Subject    string  `json:"subject" validate:"required,min=1,max=200"`
	Message    string  `json:"message" validate:"required,min=10,max=5000"`
	CategoryID *string `json:"categoryId"`
	Priority   string  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// UpdateTicketRequest carries a staff status/priority change. Both
// fields are optional; absent fields stay untouched.
type UpdateTicketRequest struct {
	Status   *string `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS CLOSED RESOLVED"`
	Priority *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// CreateReplyRequest is a staff reply payload.
type CreateReplyRequest struct {
	Content    string `json:"content" validate:"required,min=1,max=5000"`
	IsInternal bool   `json:"isInternal"`
}

// CreateNoteRequest is a staff note payload.
type CreateNoteRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// TicketCreatedResponse is all a submitter gets back: the tracking
// token is the only handle to the ticket.
type TicketCreatedResponse struct {
	ID     string              `json:"id"`
	Token  string              `json:"token"`
	Status domain.TicketStatus `json:"status"`
}

// CategorySummary is the category shape embedded in ticket views.
type CategorySummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Slug  string  `json:"slug"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// PublicAuthorResponse exposes the staff member's name and email, but
// no role or internal id.
type PublicAuthorResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PublicReplyResponse is a reply as seen through the token lookup.
type PublicReplyResponse struct {
	ID        string               `json:"id"`
	Content   string               `json:"content"`
	CreatedAt time.Time            `json:"createdAt"`
	Author    PublicAuthorResponse `json:"author"`
}

// PublicTicketResponse is the token-lookup view. No submitter metadata
// beyond what the submitter supplied, and no internal thread content.
type PublicTicketResponse struct {
	Subject   string                `json:"subject"`
	Message   string                `json:"message"`
	Email     string                `json:"email"`
	Status    domain.TicketStatus   `json:"status"`
	Priority  domain.TicketPriority `json:"priority"`
	Category  *CategorySummary      `json:"category"`
	Replies   []PublicReplyResponse `json:"replies"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// AuthorResponse is the full author shape for staff views.
type AuthorResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// ReplyResponse is a reply in the staff views.
type ReplyResponse struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	IsInternal bool           `json:"isInternal"`
	CreatedAt  time.Time      `json:"createdAt"`
	Author     AuthorResponse `json:"author"`
}

// NoteResponse is a note in the staff detail view.
type NoteResponse struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	Author    AuthorResponse `json:"author"`
}

// TicketSummaryResponse is one row of the staff listing.
type TicketSummaryResponse struct {
	ID         string                `json:"id"`
	Token      string                `json:"token"`
	Email      string                `json:"email"`
	Name       *string               `json:"name"`
	Subject    string                `json:"subject"`
	Message    string                `json:"message"`
	Status     domain.TicketStatus   `json:"status"`
	Priority   domain.TicketPriority `json:"priority"`
	Category   *CategorySummary      `json:"category"`
	Replies    []PublicReplyResponse `json:"replies"`
	ReplyCount int                   `json:"replyCount"`
	NoteCount  int                   `json:"noteCount"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// TicketDetailResponse is the full staff view of one ticket.
type TicketDetailResponse struct {
	ID        string                `json:"id"`
	Token     string                `json:"token"`
	Email     string                `json:"email"`
	Name      *string               `json:"name"`
	Subject   string                `json:"subject"`
	Message   string                `json:"message"`
	Status    domain.TicketStatus   `json:"status"`
	Priority  domain.TicketPriority `json:"priority"`
	Category  *CategorySummary      `json:"category"`
	IPAddress *string               `json:"ipAddress"`
	UserAgent *string               `json:"userAgent"`
	Replies   []ReplyResponse       `json:"replies"`
	Notes     []NoteResponse        `json:"notes"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}
