package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albedo-hq/support-portal/internal/domain"
	"github.com/albedo-hq/support-portal/internal/repository"
)

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tickets {
		if existing.Token == ticket.Token {
			return &pgconn.PgError{Code: "23505", ConstraintName: "tickets_token_key"}
		}
	}
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *ticket
	return &clone, nil
}

func (r *fakeTicketRepo) GetByToken(ctx context.Context, token string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ticket := range r.tickets {
		if ticket.Token == token {
			clone := *ticket
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) matches(ticket *domain.Ticket, filter repository.TicketFilter) bool {
	if filter.Status != nil && ticket.Status != *filter.Status {
		return false
	}
	if filter.Priority != nil && ticket.Priority != *filter.Priority {
		return false
	}
	if filter.CategoryID != nil {
		if ticket.CategoryID == nil || *ticket.CategoryID != *filter.CategoryID {
			return false
		}
	}
	if filter.SearchTerm != nil {
		needle := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
		if needle != "" &&
			!strings.Contains(strings.ToLower(ticket.Subject), needle) &&
			!strings.Contains(strings.ToLower(ticket.Message), needle) &&
			!strings.Contains(strings.ToLower(ticket.Email), needle) {
			return false
		}
	}
	return true
}

func (r *fakeTicketRepo) filtered(filter repository.TicketFilter) []domain.Ticket {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if r.matches(ticket, filter) {
			result = append(result, *ticket)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (r *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := r.filtered(filter)
	if filter.Offset >= len(result) {
		return nil, nil
	}
	result = result[filter.Offset:]
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *fakeTicketRepo) CountWithFilter(ctx context.Context, filter repository.TicketFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.filtered(filter)), nil
}

func (r *fakeTicketRepo) UpdateStatusPriority(ctx context.Context, id string, status *domain.TicketStatus, priority *domain.TicketPriority) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if status != nil {
		ticket.Status = *status
	}
	if priority != nil {
		ticket.Priority = *priority
	}
	ticket.UpdatedAt = time.Now()
	clone := *ticket
	return &clone, nil
}

func (r *fakeTicketRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

type fakeReplyRepo struct {
	mu      sync.Mutex
	replies []domain.Reply
	authors map[string]*domain.User
}

func newFakeReplyRepo() *fakeReplyRepo {
	return &fakeReplyRepo{authors: make(map[string]*domain.User)}
}

func (r *fakeReplyRepo) Create(ctx context.Context, reply *domain.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reply.ID = uuid.NewString()
	reply.CreatedAt = time.Now().Add(time.Duration(len(r.replies)) * time.Millisecond)
	r.replies = append(r.replies, *reply)
	return nil
}

func (r *fakeReplyRepo) ListByTicket(ctx context.Context, ticketID string, publicOnly bool) ([]domain.Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Reply
	for _, reply := range r.replies {
		if reply.TicketID != ticketID {
			continue
		}
		if publicOnly && reply.IsInternal {
			continue
		}
		if author, ok := r.authors[reply.UserID]; ok {
			reply.Author = author
		}
		result = append(result, reply)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeReplyRepo) CountByTicket(ctx context.Context, ticketID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, reply := range r.replies {
		if reply.TicketID == ticketID {
			count++
		}
	}
	return count, nil
}

type fakeNoteRepo struct {
	mu    sync.Mutex
	notes []domain.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{}
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note.ID = uuid.NewString()
	note.CreatedAt = time.Now().Add(time.Duration(len(r.notes)) * time.Millisecond)
	r.notes = append(r.notes, *note)
	return nil
}

func (r *fakeNoteRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Note
	for _, note := range r.notes {
		if note.TicketID == ticketID {
			result = append(result, note)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeNoteRepo) CountByTicket(ctx context.Context, ticketID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, note := range r.notes {
		if note.TicketID == ticketID {
			count++
		}
	}
	return count, nil
}

type fakeCategoryRepo struct {
	mu            sync.Mutex
	categories    map[string]*domain.Category
	articleCounts map[string]int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories:    make(map[string]*domain.Category),
		articleCounts: make(map[string]int),
	}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	category.ID = uuid.NewString()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *category
	return &clone, nil
}

func (r *fakeCategoryRepo) ListActive(ctx context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Category
	for _, category := range r.categories {
		if category.Active {
			result = append(result, *category)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) ArticleCount(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.articleCounts[id], nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

type fakeArticleRepo struct {
	mu       sync.Mutex
	articles map[string]*domain.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[string]*domain.Article)}
}

func (r *fakeArticleRepo) Create(ctx context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	article.ID = uuid.NewString()
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	clone := *article
	r.articles[article.ID] = &clone
	return nil
}

func (r *fakeArticleRepo) Update(ctx context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[article.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *article
	r.articles[article.ID] = &clone
	return nil
}

func (r *fakeArticleRepo) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	article, ok := r.articles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *article
	return &clone, nil
}

func (r *fakeArticleRepo) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, article := range r.articles {
		if article.Slug == slug {
			clone := *article
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeArticleRepo) matches(article *domain.Article, filter repository.ArticleFilter) bool {
	if filter.PublishedOnly && !article.Published {
		return false
	}
	if filter.CategoryID != nil && article.CategoryID != *filter.CategoryID {
		return false
	}
	return true
}

func (r *fakeArticleRepo) ListWithFilter(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Article
	for _, article := range r.articles {
		if r.matches(article, filter) {
			result = append(result, *article)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if filter.Offset > 0 && filter.Offset < len(result) {
		result = result[filter.Offset:]
	} else if filter.Offset >= len(result) {
		return nil, nil
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *fakeArticleRepo) CountWithFilter(ctx context.Context, filter repository.ArticleFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, article := range r.articles {
		if r.matches(article, filter) {
			count++
		}
	}
	return count, nil
}

func (r *fakeArticleRepo) ListPublished(ctx context.Context) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Article
	for _, article := range r.articles {
		if article.Published {
			result = append(result, *article)
		}
	}
	return result, nil
}

func (r *fakeArticleRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) IncrementViewCount(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	article, ok := r.articles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	article.ViewCount++
	return nil
}

// fakeMailer records outbound mail instead of sending it.
type fakeMailer struct {
	mu               sync.Mutex
	acknowledgements []sentMail
	replies          []sentMail
}

type sentMail struct {
	To       string
	Name     string
	Subject  string
	Body     string
	TrackURL string
}

func (m *fakeMailer) SendAcknowledgment(to string, data AcknowledgmentData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acknowledgements = append(m.acknowledgements, sentMail{
		To:       to,
		Name:     data.Name,
		Subject:  data.Subject,
		TrackURL: data.TrackURL,
	})
	return nil
}

func (m *fakeMailer) SendReply(to string, data ReplyData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, sentMail{
		To:       to,
		Name:     data.Name,
		Subject:  data.Subject,
		Body:     data.Reply,
		TrackURL: data.TrackURL,
	})
	return nil
}
