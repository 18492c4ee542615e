package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusClosed     TicketStatus = "CLOSED"
	TicketStatusResolved   TicketStatus = "RESOLVED"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// ValidStatus reports whether s is a known ticket status.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed, TicketStatusResolved:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known ticket priority.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests submitted through the
// public portal. Token grants unauthenticated read access to the public
// state of a single ticket and never changes once issued.
type Ticket struct {
	ID         string
	Token      string
	Email      string
	Name       *string
	Subject    string
	Message    string
	CategoryID *string
	Status     TicketStatus
	Priority   TicketPriority
	IPAddress  *string
	UserAgent  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Loaded relations; nil/empty unless the repository hydrated them.
	Category   *Category
	Replies    []Reply
	Notes      []Note
	ReplyCount int
	NoteCount  int
}

// Reply is a threaded message on a ticket. Internal replies are hidden
// from the public token lookup; public replies trigger a notification
// email to the submitter.
type Reply struct {
	ID         string
	TicketID   string
	UserID     string
	Content    string
	IsInternal bool
	CreatedAt  time.Time

	Author *User
}

// Note is a staff-only annotation on a ticket. Notes are never exposed
// through the public token lookup and never trigger email.
type Note struct {
	ID        string
	TicketID  string
	UserID    string
	Content   string
	CreatedAt time.Time

	Author *User
}
