package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketReplied   EventType = "ticket_replied"
	EventTicketStatusSet EventType = "ticket_status_set"
	EventTicketDeleted   EventType = "ticket_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload carries what the acknowledgment email needs.
type TicketCreatedPayload struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Subject      string `json:"subject"`
	Token        string `json:"token"`
	CategoryName string `json:"category_name"`
}

// TicketRepliedPayload carries what the reply email needs. Emitted only
// for public replies.
type TicketRepliedPayload struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Token   string `json:"token"`
	Reply   string `json:"reply"`
}

// TicketStatusSetPayload records a status or priority change.
type TicketStatusSetPayload struct {
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	ActorID  string `json:"actor_id"`
}
