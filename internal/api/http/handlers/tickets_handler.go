package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/albedo-hq/support-portal/internal/api/dto"
	"github.com/albedo-hq/support-portal/internal/auth"
	"github.com/albedo-hq/support-portal/internal/domain"
	"github.com/albedo-hq/support-portal/internal/service"
	apperrors "github.com/albedo-hq/support-portal/pkg/util"
)

// TicketsHandler serves both the public submission/tracking endpoints
// and the staff ticket management endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /api/tickets/submit. Public; no authentication.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError(details)
	}

	input := service.CreateTicketInput{
		Email:      req.Email,
		Name:       req.Name,
		Subject:    req.Subject,
		Message:    req.Message,
		CategoryID: req.CategoryID,
		Priority:   domain.TicketPriority(req.Priority),
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	}
	ticket, err := h.service.CreateTicket(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.TicketCreatedResponse{
		ID:     ticket.ID,
		Token:  ticket.Token,
		Status: ticket.Status,
	}})
}

// TrackTicket GET /api/tickets/token/:token. Public; the token is the
// only credential.
func (h *TicketsHandler) TrackTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetByToken(c.Context(), c.Params("token"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": publicTicket(ticket)})
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	input := parseTicketListQuery(c)
	tickets, pagination, err := h.service.List(c.Context(), input)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummaryResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items, "pagination": pagination})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// UpdateTicket PUT /api/tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError(details)
	}

	var input service.UpdateInput
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TicketPriority(*req.Priority)
		input.Priority = &priority
	}
	ticket, err := h.service.Update(c.Context(), principal, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// AddReply POST /api/tickets/:id/replies.
func (h *TicketsHandler) AddReply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	var req dto.CreateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError(details)
	}

	reply, err := h.service.AddReply(c.Context(), principal, c.Params("id"), req.Content, req.IsInternal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": replyResponse(reply)})
}

// AddNote POST /api/tickets/:id/notes.
func (h *TicketsHandler) AddNote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError(details)
	}

	note, err := h.service.AddNote(c.Context(), principal, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": noteResponse(note)})
}

// DeleteTicket DELETE /api/tickets/:id. SUPER_ADMIN only; the
// role guard runs before the handler.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Ticket deleted"})
}

func parseTicketListQuery(c *fiber.Ctx) service.ListTicketsInput {
	input := service.ListTicketsInput{
		Page:      parseInt(c.Query("page"), 1),
		Limit:     parseInt(c.Query("limit"), 20),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	if v := c.Query("status"); v != "" {
		status := domain.TicketStatus(v)
		input.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := domain.TicketPriority(v)
		input.Priority = &priority
	}
	if v := c.Query("categoryId"); v != "" {
		input.CategoryID = &v
	}
	if v := c.Query("search"); v != "" {
		input.Search = &v
	}
	return input
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func categorySummary(category *domain.Category) *dto.CategorySummary {
	if category == nil {
		return nil
	}
	return &dto.CategorySummary{
		ID:    category.ID,
		Name:  category.Name,
		Slug:  category.Slug,
		Icon:  category.Icon,
		Color: category.Color,
	}
}

func publicReplies(replies []domain.Reply) []dto.PublicReplyResponse {
	items := make([]dto.PublicReplyResponse, 0, len(replies))
	for i := range replies {
		author := dto.PublicAuthorResponse{Name: "Support"}
		if replies[i].Author != nil {
			author.Name = replies[i].Author.Name
			author.Email = replies[i].Author.Email
		}
		items = append(items, dto.PublicReplyResponse{
			ID:        replies[i].ID,
			Content:   replies[i].Content,
			CreatedAt: replies[i].CreatedAt,
			Author:    author,
		})
	}
	return items
}

func publicTicket(ticket *domain.Ticket) dto.PublicTicketResponse {
	return dto.PublicTicketResponse{
		Subject:   ticket.Subject,
		Message:   ticket.Message,
		Email:     ticket.Email,
		Status:    ticket.Status,
		Priority:  ticket.Priority,
		Category:  categorySummary(ticket.Category),
		Replies:   publicReplies(ticket.Replies),
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
	}
}

func authorResponse(author *domain.User) dto.AuthorResponse {
	if author == nil {
		return dto.AuthorResponse{}
	}
	return dto.AuthorResponse{
		ID:    author.ID,
		Name:  author.Name,
		Email: author.Email,
		Role:  author.Role,
	}
}

func replyResponse(reply *domain.Reply) dto.ReplyResponse {
	return dto.ReplyResponse{
		ID:         reply.ID,
		Content:    reply.Content,
		IsInternal: reply.IsInternal,
		CreatedAt:  reply.CreatedAt,
		Author:     authorResponse(reply.Author),
	}
}

func noteResponse(note *domain.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        note.ID,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		Author:    authorResponse(note.Author),
	}
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummaryResponse {
	return dto.TicketSummaryResponse{
		ID:         ticket.ID,
		Token:      ticket.Token,
		Email:      ticket.Email,
		Name:       ticket.Name,
		Subject:    ticket.Subject,
		Message:    ticket.Message,
		Status:     ticket.Status,
		Priority:   ticket.Priority,
		Category:   categorySummary(ticket.Category),
		Replies:    publicReplies(ticket.Replies),
		ReplyCount: ticket.ReplyCount,
		NoteCount:  ticket.NoteCount,
		CreatedAt:  ticket.CreatedAt,
		UpdatedAt:  ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket) dto.TicketDetailResponse {
	replies := make([]dto.ReplyResponse, 0, len(ticket.Replies))
	for i := range ticket.Replies {
		replies = append(replies, replyResponse(&ticket.Replies[i]))
	}
	notes := make([]dto.NoteResponse, 0, len(ticket.Notes))
	for i := range ticket.Notes {
		notes = append(notes, noteResponse(&ticket.Notes[i]))
	}
	return dto.TicketDetailResponse{
		ID:        ticket.ID,
		Token:     ticket.Token,
		Email:     ticket.Email,
		Name:      ticket.Name,
		Subject:   ticket.Subject,
		Message:   ticket.Message,
		Status:    ticket.Status,
		Priority:  ticket.Priority,
		Category:  categorySummary(ticket.Category),
		IPAddress: ticket.IPAddress,
		UserAgent: ticket.UserAgent,
		Replies:   replies,
		Notes:     notes,
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
	}
}
