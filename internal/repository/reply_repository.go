package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albedo-hq/support-portal/internal/domain"
)

// ReplyRepository manages ticket thread replies.
type ReplyRepository interface {
	Create(ctx context.Context, reply *domain.Reply) error
	// ListByTicket returns replies oldest-first. When publicOnly is set,
	// internal replies are excluded.
	ListByTicket(ctx context.Context, ticketID string, publicOnly bool) ([]domain.Reply, error)
	CountByTicket(ctx context.Context, ticketID string) (int, error)
}

type replyRepository struct {
	pool *pgxpool.Pool
}

// NewReplyRepository builds repository.
func NewReplyRepository(pool *pgxpool.Pool) ReplyRepository {
	return &replyRepository{pool: pool}
}

func (r *replyRepository) Create(ctx context.Context, reply *domain.Reply) error {
	const query = `
        INSERT INTO ticket_replies (ticket_id, user_id, content, is_internal)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		reply.TicketID,
		reply.UserID,
		reply.Content,
		reply.IsInternal,
	).Scan(&reply.ID, &reply.CreatedAt)
}

func (r *replyRepository) ListByTicket(ctx context.Context, ticketID string, publicOnly bool) ([]domain.Reply, error) {
	query := `
        SELECT r.id, r.ticket_id, r.user_id, r.content, r.is_internal, r.created_at,
               u.id, u.name, u.email, u.role
        FROM ticket_replies r
        JOIN users u ON u.id = r.user_id
        WHERE r.ticket_id=$1`
	if publicOnly {
		query += ` AND r.is_internal = FALSE`
	}
	query += ` ORDER BY r.created_at ASC`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReplies(rows)
}

func (r *replyRepository) CountByTicket(ctx context.Context, ticketID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ticket_replies WHERE ticket_id=$1`, ticketID).Scan(&count)
	return count, err
}

func scanReplies(rows pgx.Rows) ([]domain.Reply, error) {
	var result []domain.Reply
	for rows.Next() {
		var reply domain.Reply
		var author domain.User
		if err := rows.Scan(
			&reply.ID,
			&reply.TicketID,
			&reply.UserID,
			&reply.Content,
			&reply.IsInternal,
			&reply.CreatedAt,
			&author.ID,
			&author.Name,
			&author.Email,
			&author.Role,
		); err != nil {
			return nil, err
		}
		reply.Author = &author
		result = append(result, reply)
	}
	return result, rows.Err()
}
