package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albedo-hq/support-portal/internal/domain"
	"github.com/albedo-hq/support-portal/internal/events"
	"github.com/albedo-hq/support-portal/internal/repository"
	apperrors "github.com/albedo-hq/support-portal/pkg/util"
)

const uniqueViolationCode = "23505"

// TicketService owns the support-ticket lifecycle: public submission and
// token lookup, staff listing, thread management and deletion.
type TicketService struct {
	tickets    repository.TicketRepository
	replies    repository.ReplyRepository
	notes      repository.NoteRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	ReplyRepo    repository.ReplyRepository
	NoteRepo     repository.NoteRepository
	CategoryRepo repository.CategoryRepository
	Dispatcher   events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		replies:    deps.ReplyRepo,
		notes:      deps.NoteRepo,
		categories: deps.CategoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicketInput describes a public submission.
type CreateTicketInput struct {
	Email      string
	Name       *string
	Subject    string
	Message    string
	CategoryID *string
	Priority   domain.TicketPriority
	IPAddress  string
	UserAgent  string
}

// ListTicketsInput describes staff listing parameters.
type ListTicketsInput struct {
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	CategoryID *string
	Search     *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// Pagination describes a result page.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination normalizes page/limit and derives the page count.
func NewPagination(page, limit, total int) Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	pages := (total + limit - 1) / limit
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// CreateTicket persists a public submission, issues its tracking token
// and fires the acknowledgment event. The returned ticket has its
// category hydrated when one was referenced.
func (s *TicketService) CreateTicket(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error) {
	var category *domain.Category
	if input.CategoryID != nil {
		found, err := s.categories.GetByID(ctx, *input.CategoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError([]string{"categoryId: category does not exist"})
			}
			return nil, err
		}
		category = found
	}

	ticket := &domain.Ticket{
		Token:      generateTrackingToken(),
		Email:      strings.TrimSpace(input.Email),
		Name:       input.Name,
		Subject:    strings.TrimSpace(input.Subject),
		Message:    strings.TrimSpace(input.Message),
		CategoryID: input.CategoryID,
		Status:     domain.TicketStatusOpen,
		Priority:   input.Priority,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if input.IPAddress != "" {
		ip := input.IPAddress
		ticket.IPAddress = &ip
	}
	if input.UserAgent != "" {
		ua := input.UserAgent
		ticket.UserAgent = &ua
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		// A token collision is possible in principle; regenerate once.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			ticket.Token = generateTrackingToken()
			err = s.tickets.Create(ctx, ticket)
		}
		if err != nil {
			return nil, err
		}
	}
	ticket.Category = category

	categoryName := "General"
	if category != nil {
		categoryName = category.Name
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Email:        ticket.Email,
			Name:         displayName(ticket.Name),
			Subject:      ticket.Subject,
			Token:        ticket.Token,
			CategoryName: categoryName,
		},
	})
	return ticket, nil
}

// GetByToken resolves the public view of a ticket: category summary and
// non-internal replies oldest-first. The not-found error is uniform for
// malformed and unassigned tokens alike.
func (s *TicketService) GetByToken(ctx context.Context, token string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}

	if err := s.hydrateCategory(ctx, ticket); err != nil {
		return nil, err
	}
	replies, err := s.replies.ListByTicket(ctx, ticket.ID, true)
	if err != nil {
		return nil, err
	}
	ticket.Replies = replies
	return ticket, nil
}

// List returns a page of tickets matching the filter, each with category
// summary, reply/note counts and public-reply stubs.
func (s *TicketService) List(ctx context.Context, input ListTicketsInput) ([]domain.Ticket, Pagination, error) {
	page := input.Page
	if page <= 0 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := repository.TicketFilter{
		Status:     input.Status,
		Priority:   input.Priority,
		CategoryID: input.CategoryID,
		SearchTerm: input.Search,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, Pagination{}, err
	}
	total, err := s.tickets.CountWithFilter(ctx, filter)
	if err != nil {
		return nil, Pagination{}, err
	}

	for i := range tickets {
		if err := s.hydrateListRow(ctx, &tickets[i]); err != nil {
			return nil, Pagination{}, err
		}
	}

	return tickets, NewPagination(page, limit, total), nil
}

// GetByID returns the full staff view: all replies oldest-first and all
// notes newest-first, each with full author detail.
func (s *TicketService) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}

	if err := s.hydrateCategory(ctx, ticket); err != nil {
		return nil, err
	}
	if ticket.Replies, err = s.replies.ListByTicket(ctx, ticket.ID, false); err != nil {
		return nil, err
	}
	if ticket.Notes, err = s.notes.ListByTicket(ctx, ticket.ID); err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateInput carries the mutable subset of a ticket.
type UpdateInput struct {
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
}

// Update applies a status and/or priority change. Any status may move to
// any other status; there is no transition graph.
func (s *TicketService) Update(ctx context.Context, actor *domain.User, id string, input UpdateInput) (*domain.Ticket, error) {
	if input.Status != nil && !domain.ValidStatus(*input.Status) {
		return nil, apperrors.NewValidationError([]string{"status: must be one of OPEN, IN_PROGRESS, CLOSED, RESOLVED"})
	}
	if input.Priority != nil && !domain.ValidPriority(*input.Priority) {
		return nil, apperrors.NewValidationError([]string{"priority: must be one of LOW, MEDIUM, HIGH, URGENT"})
	}

	ticket, err := s.tickets.UpdateStatusPriority(ctx, id, input.Status, input.Priority)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}
	if err := s.hydrateCategory(ctx, ticket); err != nil {
		return nil, err
	}

	payload := events.TicketStatusSetPayload{ActorID: actor.ID}
	if input.Status != nil {
		payload.Status = string(*input.Status)
	}
	if input.Priority != nil {
		payload.Priority = string(*input.Priority)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusSet,
		TicketID: ticket.ID,
		Payload:  payload,
	})
	return ticket, nil
}

// AddReply appends a staff reply to the thread. Public replies fire the
// notification event; internal replies never do.
func (s *TicketService) AddReply(ctx context.Context, actor *domain.User, ticketID, content string, isInternal bool) (*domain.Reply, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}

	reply := &domain.Reply{
		TicketID:   ticket.ID,
		UserID:     actor.ID,
		Content:    strings.TrimSpace(content),
		IsInternal: isInternal,
	}
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, err
	}
	reply.Author = actor

	if !isInternal {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketReplied,
			TicketID: ticket.ID,
			Payload: events.TicketRepliedPayload{
				Email:   ticket.Email,
				Name:    displayName(ticket.Name),
				Subject: ticket.Subject,
				Token:   ticket.Token,
				Reply:   reply.Content,
			},
		})
	}
	return reply, nil
}

// AddNote appends a staff-only annotation. Notes never trigger email.
func (s *TicketService) AddNote(ctx context.Context, actor *domain.User, ticketID, content string) (*domain.Note, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}

	note := &domain.Note{
		TicketID: ticket.ID,
		UserID:   actor.ID,
		Content:  strings.TrimSpace(content),
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	note.Author = actor
	return note, nil
}

// Delete removes a ticket; replies and notes cascade in storage.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Ticket")
		}
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
	})
	return nil
}

func (s *TicketService) hydrateCategory(ctx context.Context, ticket *domain.Ticket) error {
	if ticket.CategoryID == nil {
		return nil
	}
	category, err := s.categories.GetByID(ctx, *ticket.CategoryID)
	if err != nil {
		// The category may have been deleted; the ticket keeps a nulled
		// reference per storage policy, so treat it as absent.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	ticket.Category = category
	return nil
}

func (s *TicketService) hydrateListRow(ctx context.Context, ticket *domain.Ticket) error {
	if err := s.hydrateCategory(ctx, ticket); err != nil {
		return err
	}
	replies, err := s.replies.ListByTicket(ctx, ticket.ID, true)
	if err != nil {
		return err
	}
	ticket.Replies = replies
	if ticket.ReplyCount, err = s.replies.CountByTicket(ctx, ticket.ID); err != nil {
		return err
	}
	if ticket.NoteCount, err = s.notes.CountByTicket(ctx, ticket.ID); err != nil {
		return err
	}
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// generateTrackingToken issues the opaque token that grants public read
// access to one ticket. 32 hex characters, not derived from the id.
func generateTrackingToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func displayName(name *string) string {
	if name != nil && strings.TrimSpace(*name) != "" {
		return strings.TrimSpace(*name)
	}
	return "there"
}
